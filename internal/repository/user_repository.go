package repository

import (
	"child_growth_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkFreeTrialUsed 条件更新，只有 false -> true 时影响一行，重复调用无副作用
func (r *UserRepository) MarkFreeTrialUsed(tx *gorm.DB, userID uint) (bool, error) {
	res := tx.Model(&model.User{}).
		Where("id = ? AND free_trial_used = ?", userID, false).
		Update("free_trial_used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
