package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
	"github.com/nyatsime/portal-api/pkg/export"
)

type reportLearnerReader interface {
	FindByLearnerID(ctx context.Context, learnerID string) (*models.Learner, error)
}

type reportMarkReader interface {
	ListByLearner(ctx context.Context, learnerID, term string) ([]models.Mark, error)
}

type reportAttendanceReader interface {
	StatusCounts(ctx context.Context, learnerID string) (map[string]int, error)
}

// ReportService assembles a learner's report card from marks and
// attendance, optionally rendered as a PDF.
type ReportService struct {
	learners   reportLearnerReader
	marks      reportMarkReader
	attendance reportAttendanceReader
	logger     *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(learners reportLearnerReader, marks reportMarkReader, attendance reportAttendanceReader, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{learners: learners, marks: marks, attendance: attendance, logger: logger}
}

// Build returns the report card for one learner, optionally restricted
// to a term.
func (s *ReportService) Build(ctx context.Context, learnerID, term string) (*models.ReportCard, error) {
	learner, err := s.learners.FindByLearnerID(ctx, learnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load learner")
	}

	marks, err := s.marks.ListByLearner(ctx, learnerID, term)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks")
	}

	counts, err := s.attendance.StatusCounts(ctx, learnerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}

	return &models.ReportCard{Learner: *learner, Marks: marks, Attendance: counts}, nil
}

// BuildPDF renders the report card as a printable document.
func (s *ReportService) BuildPDF(ctx context.Context, learnerID, term string) ([]byte, error) {
	card, err := s.Build(ctx, learnerID, term)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Title:   "Report Card",
		Columns: []string{"Subject", "Assessment", "Term", "Score", "Out Of", "Comment"},
	}
	for _, mark := range card.Marks {
		table.Rows = append(table.Rows, []string{
			mark.Subject,
			mark.AssessmentType,
			mark.Term,
			fmt.Sprintf("%.1f", mark.Score),
			fmt.Sprintf("%.1f", mark.MaxScore),
			mark.Comment,
		})
	}

	lead := []string{
		fmt.Sprintf("Learner: %s (%s)", card.Learner.FullName(), card.Learner.LearnerID),
		fmt.Sprintf("Grade: %s", card.Learner.Grade),
	}
	if term != "" {
		lead = append(lead, fmt.Sprintf("Term: %s", term))
	}
	for status, count := range card.Attendance {
		lead = append(lead, fmt.Sprintf("Attendance %s: %d", status, count))
	}

	pdf, err := export.PDF(table, lead...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report pdf")
	}
	return pdf, nil
}
