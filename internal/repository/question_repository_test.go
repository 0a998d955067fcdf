package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleByAgeFiltersEligibleQuestions(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	inRange := createQuestion(t, db, 5, 7, true)
	lowerBound := createQuestion(t, db, 6, 6, true)
	createQuestion(t, db, 5, 7, false)
	createQuestion(t, db, 7, 9, true)
	createQuestion(t, db, 2, 5, true)

	ids, err := repo.SampleByAge(ctx, 6, 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{inRange.ID, lowerBound.ID}, ids)
}

func TestSampleByAgeReturnsAtMostN(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)

	for i := 0; i < 8; i++ {
		createQuestion(t, db, 3, 8, true)
	}

	ids, err := repo.SampleByAge(context.Background(), 4, 5)
	require.NoError(t, err)
	assert.Len(t, ids, 5)

	seen := make(map[uint]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestSampleByAgeExcluding(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	a := createQuestion(t, db, 3, 8, true)
	b := createQuestion(t, db, 3, 8, true)

	id, ok, err := repo.SampleByAgeExcluding(ctx, 4, []uint{a.ID})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, b.ID, id)

	_, ok, err = repo.SampleByAgeExcluding(ctx, 4, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadItemsSkipsInactiveAndOrdersOptions(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	active := createQuestion(t, db, 3, 8, true)
	inactive := createQuestion(t, db, 3, 8, false)

	items, err := repo.LoadItems(ctx, []uint{active.ID, inactive.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)

	q := items[active.ID]
	require.Len(t, q.Options, 2)
	assert.Equal(t, "A", q.Options[0].Content)
	assert.Equal(t, "B", q.Options[1].Content)
	assert.Empty(t, q.Options[0].Scores)

	graded, err := repo.LoadForGrading(ctx, []uint{active.ID})
	require.NoError(t, err)
	require.Len(t, graded[active.ID].Options[0].Scores, 1)
}
