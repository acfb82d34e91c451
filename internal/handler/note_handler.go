package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/govlead/academy-api/internal/service"
	appErrors "github.com/govlead/academy-api/pkg/errors"
	"github.com/govlead/academy-api/pkg/response"
)

// NoteHandler wires HTTP endpoints to the note service.
type NoteHandler struct {
	service *service.NoteService
}

// NewNoteHandler creates a new handler.
func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{service: svc}
}

// List godoc
// @Summary List lesson notes
// @Description List the caller's notes for a lesson, oldest first
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /notes/{lessonId} [get]
func (h *NoteHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	lessonID, err := idParam(c, "lessonId")
	if err != nil {
		response.Error(c, err)
		return
	}
	notes, err := h.service.List(c.Request.Context(), claims.UserID, lessonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes)
}

type noteCreateRequest struct {
	LessonID int64  `json:"lesson_id" binding:"required,gt=0"`
	Content  string `json:"content" binding:"required"`
}

// Create godoc
// @Summary Add a lesson note
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body noteCreateRequest true "Note payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req noteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "lesson_id and content are required"))
		return
	}
	note, err := h.service.Create(c.Request.Context(), claims.UserID, req.LessonID, service.NoteRequest{Content: req.Content})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}
