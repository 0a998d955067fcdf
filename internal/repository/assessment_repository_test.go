package repository

import (
	"child_growth_backend/internal/model"
	"child_growth_backend/internal/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssessmentEnforcesDailyUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db)
	ctx := context.Background()

	first := &model.Assessment{UserID: 1, ChildID: 2, BizDay: "2026-10-19", SubmittedAt: time.Now()}
	require.NoError(t, repo.CreateAssessment(first))

	dup := &model.Assessment{UserID: 1, ChildID: 2, BizDay: "2026-10-19", SubmittedAt: time.Now()}
	err := repo.CreateAssessment(dup)
	assert.ErrorIs(t, err, util.ErrDailyAlreadySubmitted)

	nextDay := &model.Assessment{UserID: 1, ChildID: 2, BizDay: "2026-10-20", SubmittedAt: time.Now()}
	require.NoError(t, repo.CreateAssessment(nextDay))

	otherChild := &model.Assessment{UserID: 1, ChildID: 3, BizDay: "2026-10-19", SubmittedAt: time.Now()}
	require.NoError(t, repo.CreateAssessment(otherChild))

	found, err := repo.FindForBizDay(ctx, 1, 2, "2026-10-19")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	missing, err := repo.FindForBizDay(ctx, 1, 2, "2026-10-21")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSumDimensionScoresGroupsByAssessmentAndCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db)

	require.NoError(t, repo.CreateDimensionScores([]model.AssessmentDimensionScore{
		{AssessmentID: 1, AssessmentAnswerID: 1, DimensionCode: "A", Score: 3},
		{AssessmentID: 1, AssessmentAnswerID: 2, DimensionCode: "A", Score: 2},
		{AssessmentID: 1, AssessmentAnswerID: 2, DimensionCode: "B", Score: 1},
		{AssessmentID: 2, AssessmentAnswerID: 3, DimensionCode: "A", Score: 7},
	}))

	sums, err := repo.SumDimensionScores(context.Background(), 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 5, "B": 1}, sums[1])
	assert.Equal(t, map[string]int{"A": 7}, sums[2])
	assert.Nil(t, sums[3])
}
