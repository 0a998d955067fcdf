package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestChildAgeOn(t *testing.T) {
	c := Child{BirthDate: datatypes.Date(time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC))}

	tests := []struct {
		today time.Time
		want  int
	}{
		{time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), 5},
		{time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 6},
		{time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), 6},
		{time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.AgeOn(tt.today), tt.today.Format("2006-01-02"))
	}
}

func TestQuestionTypeIsClosed(t *testing.T) {
	_, err := ParseQuestionType("single")
	assert.Error(t, err)

	var q struct {
		Type QuestionType `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"MULTI"}`), &q))
	assert.Equal(t, QuestionTypeMulti, q.Type)
	assert.Error(t, json.Unmarshal([]byte(`{"type":"ESSAY"}`), &q))

	assert.True(t, QuestionTypeSingle.AcceptsSelection(1))
	assert.False(t, QuestionTypeSingle.AcceptsSelection(2))
	assert.False(t, QuestionTypeMulti.AcceptsSelection(0))
	assert.True(t, QuestionTypeMulti.AcceptsSelection(3))
	assert.False(t, QuestionType(0).AcceptsSelection(1))

	_, err = QuestionType(9).Value()
	assert.Error(t, err)
}

func TestAssessmentSessionReplaceAt(t *testing.T) {
	ids := []uint{1, 2, 3, 4, 5}
	s := NewAssessmentSession("s", 1, 2, "2026-10-19", ids, time.Now())
	ids[0] = 99
	assert.Equal(t, uint(1), s.QuestionIDs[0], "constructor copies its input")

	s.ReplaceAt(2, 6)
	assert.Equal(t, []uint{1, 6, 3, 4, 5}, s.QuestionIDs)
	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6}, s.ServedQuestionIDs)
	assert.True(t, s.Valid())

	s.QuestionIDs = s.QuestionIDs[:4]
	assert.False(t, s.Valid())
}

func TestSortDimensionScores(t *testing.T) {
	scores := []DimensionScore{
		{Code: "ZZZ"},
		{Code: DimensionCreativity},
		{Code: "AAA"},
		{Code: DimensionLanguage},
	}
	SortDimensionScores(scores)

	codes := make([]string, 0, len(scores))
	for _, s := range scores {
		codes = append(codes, s.Code)
	}
	assert.Equal(t, []string{DimensionLanguage, DimensionCreativity, "AAA", "ZZZ"}, codes)
}
