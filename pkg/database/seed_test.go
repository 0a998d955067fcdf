package database

import (
	"child_growth_backend/internal/model"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBank = `
questions:
  - content: 孩子能否主动和小朋友分享玩具？
    type: SINGLE
    minAge: 3
    maxAge: 6
    options:
      - content: 经常会
        scores: {SOCIAL: 3}
      - content: 偶尔会
        suggest: true
        tip: 可以通过角色扮演游戏练习分享
        scores: {SOCIAL: 1, EMOTION: 1}
  - content: 孩子会做哪些家务？
    type: MULTI
    minAge: 4
    maxAge: 8
    inactive: true
    options:
      - content: 收拾玩具
        sortNo: 2
        scores: {SELF_CARE: 2}
      - content: 摆放碗筷
        sortNo: 1
        scores: {SELF_CARE: 1, LOGIC: 1}
`

func TestSeedQuestions(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)

	n, err := SeedQuestions(db, strings.NewReader(sampleBank))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var questions []model.Question
	require.NoError(t, db.Preload("Options.Scores").Order("id").Find(&questions).Error)
	require.Len(t, questions, 2)

	first := questions[0]
	assert.Equal(t, model.QuestionTypeSingle, first.Type)
	assert.True(t, first.IsActive)
	require.Len(t, first.Options, 2)
	assert.Equal(t, 1, first.Options[0].SortNo)
	assert.Equal(t, 2, first.Options[1].SortNo)
	require.NotNil(t, first.Options[1].ImprovementTip)
	assert.True(t, first.Options[1].SuggestFlag)
	assert.Len(t, first.Options[1].Scores, 2)

	second := questions[1]
	assert.Equal(t, model.QuestionTypeMulti, second.Type)
	assert.False(t, second.IsActive)
}

func TestSeedQuestionsRejectsUnknownDimension(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)

	bank := `
questions:
  - content: q
    type: SINGLE
    minAge: 3
    maxAge: 4
    options:
      - content: a
        scores: {MUSIC: 1}
      - content: b
`
	_, err = SeedQuestions(db, strings.NewReader(bank))
	assert.ErrorContains(t, err, "unknown dimension")

	var count int64
	db.Model(&model.Question{}).Count(&count)
	assert.Zero(t, count)
}

func TestSeedQuestionsRejectsLowercaseType(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)

	bank := `
questions:
  - content: q
    type: single
    minAge: 3
    maxAge: 4
    options:
      - content: a
      - content: b
`
	_, err = SeedQuestions(db, strings.NewReader(bank))
	assert.ErrorContains(t, err, "unknown question type")
}

func TestSampleBankCoversEveryAge(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "sample.db"))
	require.NoError(t, err)

	f, err := os.Open(filepath.Join("..", "..", "data", "questions.sample.yaml"))
	require.NoError(t, err)
	defer f.Close()

	n, err := SeedQuestions(db, f)
	require.NoError(t, err)
	assert.Positive(t, n)

	for age := 3; age <= 8; age++ {
		var count int64
		require.NoError(t, db.Model(&model.Question{}).
			Where("is_active = ? AND min_age <= ? AND max_age >= ?", true, age, age).
			Count(&count).Error)
		assert.GreaterOrEqual(t, count, int64(model.QuestionsPerSession+1), "age %d", age)
	}
}
