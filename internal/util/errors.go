package util

import (
	"errors"
	"fmt"
)

// ErrorKind 业务错误分类，接口响应中作为 reason 返回
type ErrorKind string

const (
	KindNotFound              ErrorKind = "NOT_FOUND"
	KindForbiddenResource     ErrorKind = "FORBIDDEN_RESOURCE"
	KindInvalidRequest        ErrorKind = "INVALID_REQUEST"
	KindDailyIncomplete       ErrorKind = "DAILY_ASSESSMENT_INCOMPLETE"
	KindDailyAlreadySubmitted ErrorKind = "DAILY_ASSESSMENT_ALREADY_SUBMITTED"
	KindQuestionPoolExhausted ErrorKind = "QUESTION_POOL_EXHAUSTED"
	KindFreeTrialAlreadyUsed  ErrorKind = "FREE_TRIAL_ALREADY_USED"
	KindInternal              ErrorKind = "INTERNAL_ERROR"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同类错误视为相等，便于 errors.Is(err, util.ErrNotFound)
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf 非 AppError 一律视为内部错误
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrNotFound              = NewError(KindNotFound, "resource not found")
	ErrForbiddenResource     = NewError(KindForbiddenResource, "resource belongs to another user")
	ErrInvalidRequest        = NewError(KindInvalidRequest, "invalid request")
	ErrSessionExpired        = NewError(KindInvalidRequest, "session expired")
	ErrDailyIncomplete       = NewError(KindDailyIncomplete, "answers must cover exactly the current questions")
	ErrDailyAlreadySubmitted = NewError(KindDailyAlreadySubmitted, "today's assessment already submitted")
	ErrQuestionPoolExhausted = NewError(KindQuestionPoolExhausted, "not enough eligible questions")
	ErrFreeTrialAlreadyUsed  = NewError(KindFreeTrialAlreadyUsed, "free trial already used")
	ErrInternal              = NewError(KindInternal, "internal error")
)
