package repository

import (
	"child_growth_backend/internal/model"
	"child_growth_backend/pkg/database"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createQuestion(t *testing.T, db *gorm.DB, minAge, maxAge int, active bool) model.Question {
	t.Helper()
	q := model.Question{
		Content:  "question",
		Type:     model.QuestionTypeSingle,
		MinAge:   minAge,
		MaxAge:   maxAge,
		IsActive: active,
		Options: []model.QuestionOption{
			{Content: "B", SortNo: 2, IsActive: true, Scores: []model.OptionDimensionScore{{DimensionCode: model.DimensionLogic, Score: 2}}},
			{Content: "A", SortNo: 1, IsActive: true, Scores: []model.OptionDimensionScore{{DimensionCode: model.DimensionLanguage, Score: 1}}},
			{Content: "retired", SortNo: 3, IsActive: false},
		},
	}
	require.NoError(t, db.Create(&q).Error)
	return q
}
