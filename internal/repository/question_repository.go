package repository

import (
	"child_growth_backend/internal/model"
	"context"
	"math/rand/v2"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) eligibleIDs(ctx context.Context, ageYears int, excluded []uint) ([]uint, error) {
	query := r.DB.WithContext(ctx).Model(&model.Question{}).
		Where("is_active = ? AND min_age <= ? AND max_age >= ?", true, ageYears, ageYears)
	if len(excluded) > 0 {
		query = query.Where("id NOT IN ?", excluded)
	}
	var ids []uint
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// SampleByAge 随机抽取最多 n 道适龄且启用的题目，调用方需检查返回数量
func (r *QuestionRepository) SampleByAge(ctx context.Context, ageYears, n int) ([]uint, error) {
	ids, err := r.eligibleIDs(ctx, ageYears, nil)
	if err != nil {
		return nil, err
	}
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids, nil
}

// SampleByAgeExcluding 从未出现在 excluded 中的适龄题目里随机取一道
func (r *QuestionRepository) SampleByAgeExcluding(ctx context.Context, ageYears int, excluded []uint) (uint, bool, error) {
	ids, err := r.eligibleIDs(ctx, ageYears, excluded)
	if err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[rand.IntN(len(ids))], true, nil
}

func activeOptions(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).Order("sort_no asc, id asc")
}

// LoadItems 按 ids 加载题目及启用的选项（不含维度分值），缺失或停用的题目不会返回
func (r *QuestionRepository) LoadItems(ctx context.Context, ids []uint) (map[uint]model.Question, error) {
	return r.load(ctx, ids, false)
}

// LoadForGrading 与 LoadItems 相同，但同时加载选项的维度分值
func (r *QuestionRepository) LoadForGrading(ctx context.Context, ids []uint) (map[uint]model.Question, error) {
	return r.load(ctx, ids, true)
}

func (r *QuestionRepository) load(ctx context.Context, ids []uint, withScores bool) (map[uint]model.Question, error) {
	result := make(map[uint]model.Question, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := r.DB.WithContext(ctx).Preload("Options", activeOptions)
	if withScores {
		query = query.Preload("Options.Scores")
	}

	var questions []model.Question
	if err := query.Where("id IN ? AND is_active = ?", ids, true).Find(&questions).Error; err != nil {
		return nil, err
	}
	for _, q := range questions {
		result[q.ID] = q
	}
	return result, nil
}

// FindWithOptions 查询题目及全部选项（包括已停用的），用于展示历史测评
func (r *QuestionRepository) FindWithOptions(ctx context.Context, ids []uint) (map[uint]model.Question, error) {
	result := make(map[uint]model.Question, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var questions []model.Question
	err := r.DB.WithContext(ctx).Unscoped().
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Unscoped().Order("sort_no asc, id asc") }).
		Where("id IN ?", ids).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		result[q.ID] = q
	}
	return result, nil
}
