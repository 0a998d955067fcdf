package service

import (
	"child_growth_backend/internal/model"
	"child_growth_backend/internal/repository"
	"child_growth_backend/internal/util"
	"child_growth_backend/pkg/logger"
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EntitlementGate 会员 / 免费体验资格校验
type EntitlementGate interface {
	RequireCanStart(ctx context.Context, userID uint) error
	// OnSubmitted 在提交事务内调用，非会员首次提交后标记免费体验已使用，可重复调用
	OnSubmitted(tx *gorm.DB, userID uint) error
}

type EntitlementService struct {
	Users *repository.UserRepository
	Clock BizClock
}

func NewEntitlementService(users *repository.UserRepository, clock BizClock) *EntitlementService {
	return &EntitlementService{Users: users, Clock: clock}
}

func (s *EntitlementService) RequireCanStart(ctx context.Context, userID uint) error {
	user, err := s.Users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NewError(util.KindNotFound, "user not found")
	} else if err != nil {
		return errors.Wrap(err, "load user")
	}

	if user.IsMember(s.Clock.Now()) {
		return nil
	}
	if user.FreeTrialUsed {
		return util.ErrFreeTrialAlreadyUsed
	}
	return nil
}

func (s *EntitlementService) OnSubmitted(tx *gorm.DB, userID uint) error {
	var user model.User
	if err := tx.First(&user, userID).Error; err != nil {
		return errors.Wrap(err, "load user")
	}
	if user.IsMember(s.Clock.Now()) {
		return nil
	}

	flipped, err := s.Users.MarkFreeTrialUsed(tx, userID)
	if err != nil {
		return errors.Wrap(err, "mark free trial used")
	}
	if flipped {
		logger.Log.Info("Free trial consumed", zap.Uint("userID", userID))
	}
	return nil
}
