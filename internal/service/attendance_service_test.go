package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type fakeAttendanceRepo struct {
	records map[string]*models.AttendanceRecord
}

func attendanceKey(r *models.AttendanceRecord) string {
	return r.LearnerID + "|" + r.Date + "|" + r.Subject
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	if f.records == nil {
		f.records = make(map[string]*models.AttendanceRecord)
	}
	copied := *record
	f.records[attendanceKey(record)] = &copied
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, error) {
	var out []models.AttendanceDetail
	for _, r := range f.records {
		if filter.LearnerID != "" && r.LearnerID != filter.LearnerID {
			continue
		}
		if filter.Date != "" && r.Date != filter.Date {
			continue
		}
		out = append(out, models.AttendanceDetail{AttendanceRecord: *r})
	}
	return out, nil
}

func TestSubmitAttendanceOverwritesSameKey(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(repo, nil, nil)

	require.NoError(t, svc.Submit(context.Background(), []SubmitAttendanceRequest{
		{LearnerID: "LRN-0001", Date: "2026-08-28", Subject: "Maths", Status: "Present"},
	}))
	require.NoError(t, svc.Submit(context.Background(), []SubmitAttendanceRequest{
		{LearnerID: "LRN-0001", Date: "2026-08-28", Subject: "Maths", Status: "Absent", Reason: "Sick"},
	}))

	require.Len(t, repo.records, 1)
	for _, r := range repo.records {
		assert.Equal(t, "Absent", r.Status)
		assert.Equal(t, "Sick", r.Reason)
	}
}

func TestSubmitAttendanceValidatesWholeBatchFirst(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(repo, nil, nil)

	err := svc.Submit(context.Background(), []SubmitAttendanceRequest{
		{LearnerID: "LRN-0001", Date: "2026-08-28", Status: "Present"},
		{LearnerID: "LRN-0002", Date: "2026-08-28"}, // no status
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
	assert.Empty(t, repo.records, "a bad entry must keep the whole batch out")
}
