package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
	"github.com/govlead/academy-api/pkg/export"
)

// ExportFormat selects the rendering backend for admin exports.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type exportUserSource interface {
	ListSummaries(ctx context.Context) ([]models.UserSummary, error)
}

type exportCourseSource interface {
	ListAll(ctx context.Context) ([]models.Course, error)
}

// ExportResult carries rendered bytes plus HTTP metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders admin data exports in CSV or PDF.
type ExportService struct {
	users   exportUserSource
	courses exportCourseSource
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(users exportUserSource, courses exportCourseSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		users:   users,
		courses: courses,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

// Users exports the user roster.
func (s *ExportService) Users(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	users, err := s.users.ListSummaries(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load users for export")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Name", "Email", "Role", "Subscription", "Joined"},
		Rows:    make([]map[string]string, 0, len(users)),
	}
	for _, u := range users {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":           strconv.FormatInt(u.ID, 10),
			"Name":         u.Name,
			"Email":        u.Email,
			"Role":         string(u.Role),
			"Subscription": string(u.SubscriptionStatus),
			"Joined":       u.CreatedAt.Format(time.RFC3339),
		})
	}
	return s.render(dataset, "users", format)
}

// Courses exports the full course catalog, drafts included.
func (s *ExportService) Courses(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses for export")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Title", "Status", "Difficulty", "Paid", "Price"},
		Rows:    make([]map[string]string, 0, len(courses)),
	}
	for _, c := range courses {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":         strconv.FormatInt(c.ID, 10),
			"Title":      c.Title,
			"Status":     string(c.Status),
			"Difficulty": c.Difficulty,
			"Paid":       strconv.FormatBool(c.IsPaid),
			"Price":      strconv.FormatFloat(c.Price, 'f', 2, 64),
		})
	}
	return s.render(dataset, "courses", format)
}

func (s *ExportService) render(dataset export.Dataset, name string, format ExportFormat) (*ExportResult, error) {
	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("%s-%s.csv", name, stamp),
		}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("%s-%s.pdf", name, stamp),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
