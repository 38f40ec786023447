package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type fakeEnrollmentRepo struct {
	learners map[string]*models.Learner
}

func (f *fakeEnrollmentRepo) SetApproved(ctx context.Context, learnerID string, approved bool) error {
	if l, ok := f.learners[learnerID]; ok {
		l.Approved = approved
	}
	return nil
}

func (f *fakeEnrollmentRepo) DeleteUnapproved(ctx context.Context, learnerID string) error {
	if l, ok := f.learners[learnerID]; ok && !l.Approved {
		delete(f.learners, learnerID)
	}
	return nil
}

func (f *fakeEnrollmentRepo) SetFeesBlocked(ctx context.Context, learnerID string, blocked bool) error {
	if l, ok := f.learners[learnerID]; ok {
		l.FeesBlocked = blocked
	}
	return nil
}

func newEnrollmentFixture() (*fakeEnrollmentRepo, *EnrollmentService) {
	repo := &fakeEnrollmentRepo{learners: map[string]*models.Learner{
		"LRN-0001": {LearnerID: "LRN-0001", Approved: false},
	}}
	return repo, NewEnrollmentService(repo, nil, nil)
}

func TestApproveIsIdempotent(t *testing.T) {
	repo, svc := newEnrollmentFixture()

	req := ApproveLearnerRequest{LearnerID: "LRN-0001", Action: models.ActionApprove}
	require.NoError(t, svc.Apply(context.Background(), req))
	assert.True(t, repo.learners["LRN-0001"].Approved)

	require.NoError(t, svc.Apply(context.Background(), req))
	assert.True(t, repo.learners["LRN-0001"].Approved)
}

func TestEmptyActionDefaultsToApprove(t *testing.T) {
	repo, svc := newEnrollmentFixture()

	require.NoError(t, svc.Apply(context.Background(), ApproveLearnerRequest{LearnerID: "LRN-0001"}))
	assert.True(t, repo.learners["LRN-0001"].Approved)
}

func TestRejectRemovesOnlyUnapproved(t *testing.T) {
	repo, svc := newEnrollmentFixture()

	require.NoError(t, svc.Apply(context.Background(), ApproveLearnerRequest{
		LearnerID: "LRN-0001",
		Action:    models.ActionReject,
	}))
	assert.NotContains(t, repo.learners, "LRN-0001")
}

func TestRejectAfterApproveIsNoOp(t *testing.T) {
	repo, svc := newEnrollmentFixture()

	require.NoError(t, svc.Apply(context.Background(), ApproveLearnerRequest{LearnerID: "LRN-0001", Action: models.ActionApprove}))
	require.NoError(t, svc.Apply(context.Background(), ApproveLearnerRequest{LearnerID: "LRN-0001", Action: models.ActionReject}))

	require.Contains(t, repo.learners, "LRN-0001")
	assert.True(t, repo.learners["LRN-0001"].Approved)
}

func TestFeeBlockToggles(t *testing.T) {
	repo, svc := newEnrollmentFixture()

	require.NoError(t, svc.Apply(context.Background(), ApproveLearnerRequest{LearnerID: "LRN-0001", Action: models.ActionBlockFees}))
	assert.True(t, repo.learners["LRN-0001"].FeesBlocked)

	require.NoError(t, svc.Apply(context.Background(), ApproveLearnerRequest{LearnerID: "LRN-0001", Action: models.ActionUnblockFees}))
	assert.False(t, repo.learners["LRN-0001"].FeesBlocked)
}

func TestUnknownActionRejected(t *testing.T) {
	_, svc := newEnrollmentFixture()

	err := svc.Apply(context.Background(), ApproveLearnerRequest{LearnerID: "LRN-0001", Action: "promote"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMissingLearnerIDRejected(t *testing.T) {
	_, svc := newEnrollmentFixture()

	err := svc.Apply(context.Background(), ApproveLearnerRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}
