package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/govlead/academy-api/internal/service"
	appErrors "github.com/govlead/academy-api/pkg/errors"
	"github.com/govlead/academy-api/pkg/response"
)

// BookmarkHandler wires HTTP endpoints to the bookmark service.
type BookmarkHandler struct {
	service *service.BookmarkService
}

// NewBookmarkHandler creates a new handler.
func NewBookmarkHandler(svc *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{service: svc}
}

type bookmarkRequest struct {
	CourseID int64 `json:"course_id" binding:"required,gt=0"`
}

// List godoc
// @Summary List bookmarked course IDs
// @Tags Bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /bookmarks [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	ids, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ids)
}

// Add godoc
// @Summary Bookmark a course
// @Description Save a course for later. Repeating the call is a no-op.
// @Tags Bookmarks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body bookmarkRequest true "Bookmark payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bookmarks [post]
func (h *BookmarkHandler) Add(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "course_id is required"))
		return
	}
	if err := h.service.Add(c.Request.Context(), claims.UserID, req.CourseID); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"course_id": req.CourseID})
}

// Remove godoc
// @Summary Remove a bookmark
// @Description Delete a saved course. Removing an absent bookmark succeeds.
// @Tags Bookmarks
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 204 {object} response.Envelope
// @Router /bookmarks/{courseId} [delete]
func (h *BookmarkHandler) Remove(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	courseID, err := idParam(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Remove(c.Request.Context(), claims.UserID, courseID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
