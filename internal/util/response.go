package util

import (
	"child_growth_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Reason  ErrorKind   `json:"reason,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: message,
		Reason:  KindInvalidRequest,
	})
}

var kindStatus = map[ErrorKind]int{
	KindNotFound:              http.StatusNotFound,
	KindForbiddenResource:     http.StatusForbidden,
	KindInvalidRequest:        http.StatusBadRequest,
	KindDailyIncomplete:       http.StatusUnprocessableEntity,
	KindDailyAlreadySubmitted: http.StatusConflict,
	KindQuestionPoolExhausted: http.StatusConflict,
	KindFreeTrialAlreadyUsed:  http.StatusPaymentRequired,
	KindInternal:              http.StatusInternalServerError,
}

// HandleError 将业务错误转换为 HTTP 响应，内部错误只记录日志不暴露细节
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Kind == KindInternal {
		logger.Log.Error("Internal server error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, Response{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
			Reason:  KindInternal,
		})
		return
	}

	status, ok := kindStatus[appErr.Kind]
	if !ok {
		status = http.StatusBadRequest
	}
	c.JSON(status, Response{
		Code:    status,
		Message: appErr.Message,
		Reason:  appErr.Kind,
	})
}
