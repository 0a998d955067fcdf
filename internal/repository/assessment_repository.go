package repository

import (
	"child_growth_backend/internal/model"
	"child_growth_backend/internal/util"
	"context"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// WithTx 返回绑定到事务的仓储
func (r *AssessmentRepository) WithTx(tx *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: tx}
}

// isDuplicateKey 识别唯一索引冲突（MySQL 1062 / SQLite UNIQUE）
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return true
	}
	return false
}

// FindForBizDay 查询某孩子在指定业务日的测评，不存在时返回 nil
func (r *AssessmentRepository) FindForBizDay(ctx context.Context, userID, childID uint, bizDay string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND child_id = ? AND biz_day = ?", userID, childID, bizDay).
		Limit(1).Find(&a).Error
	if err != nil {
		return nil, err
	}
	if a.ID == 0 {
		return nil, nil
	}
	return &a, nil
}

// CreateAssessment 唯一索引 (user_id, child_id, biz_day) 冲突时返回 util.ErrDailyAlreadySubmitted
func (r *AssessmentRepository) CreateAssessment(a *model.Assessment) error {
	err := r.DB.Create(a).Error
	if err != nil && isDuplicateKey(err) {
		return util.ErrDailyAlreadySubmitted
	}
	return err
}

func (r *AssessmentRepository) CreateItem(item *model.AssessmentItem) error {
	return r.DB.Create(item).Error
}

func (r *AssessmentRepository) CreateAnswer(answer *model.AssessmentAnswer) error {
	return r.DB.Create(answer).Error
}

func (r *AssessmentRepository) CreateDimensionScores(scores []model.AssessmentDimensionScore) error {
	if len(scores) == 0 {
		return nil
	}
	return r.DB.Create(&scores).Error
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.WithContext(ctx).First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) ListByChild(ctx context.Context, userID, childID uint, page, limit int) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64
	query := r.DB.WithContext(ctx).Model(&model.Assessment{}).
		Where("user_id = ? AND child_id = ?", userID, childID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("biz_day desc, id desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

func (r *AssessmentRepository) FindItems(ctx context.Context, assessmentID uint) ([]model.AssessmentItem, error) {
	var items []model.AssessmentItem
	err := r.DB.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("display_order asc").
		Find(&items).Error
	return items, err
}

func (r *AssessmentRepository) FindAnswers(ctx context.Context, assessmentID uint) ([]model.AssessmentAnswer, error) {
	var answers []model.AssessmentAnswer
	err := r.DB.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("id asc").
		Find(&answers).Error
	return answers, err
}

type dimensionSumRow struct {
	AssessmentID  uint
	DimensionCode string
	Total         int
}

// SumDimensionScores 按维度汇总快照分值，没有记录的维度不返回
func (r *AssessmentRepository) SumDimensionScores(ctx context.Context, assessmentIDs ...uint) (map[uint]map[string]int, error) {
	result := make(map[uint]map[string]int, len(assessmentIDs))
	if len(assessmentIDs) == 0 {
		return result, nil
	}

	var rows []dimensionSumRow
	err := r.DB.WithContext(ctx).Model(&model.AssessmentDimensionScore{}).
		Select("assessment_id, dimension_code, SUM(score) AS total").
		Where("assessment_id IN ?", assessmentIDs).
		Group("assessment_id, dimension_code").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if result[row.AssessmentID] == nil {
			result[row.AssessmentID] = make(map[string]int)
		}
		result[row.AssessmentID][row.DimensionCode] = row.Total
	}
	return result, nil
}
