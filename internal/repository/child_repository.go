package repository

import (
	"child_growth_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ChildRepository struct {
	DB *gorm.DB
}

func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{DB: db}
}

func (r *ChildRepository) Create(child *model.Child) error {
	return r.DB.Create(child).Error
}

// FindByID 不存在时返回 gorm.ErrRecordNotFound
func (r *ChildRepository) FindByID(ctx context.Context, id uint) (*model.Child, error) {
	var child model.Child
	err := r.DB.WithContext(ctx).First(&child, id).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}
