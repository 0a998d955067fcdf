package controller

import (
	"child_growth_backend/internal/service"
	"child_growth_backend/internal/util"
	"context"

	"github.com/gin-gonic/gin"
)

// DailyAssessmentUseCase 每日测评的全部操作，便于在测试中替换
type DailyAssessmentUseCase interface {
	Begin(ctx context.Context, userID, childID uint) (*service.BeginResult, error)
	Replace(ctx context.Context, userID uint, sessionID string, childID uint, displayOrder int) (*service.ReplaceResult, error)
	Submit(ctx context.Context, userID uint, sessionID string, childID uint, answers []service.SubmitAnswer) (*service.SubmitResult, error)
	TodayStatus(ctx context.Context, userID, childID uint) (*service.TodayStatus, error)
	ListHistory(ctx context.Context, userID, childID uint, page, limit int) ([]service.AssessmentSummary, int64, error)
	GetResult(ctx context.Context, userID, assessmentID uint) (*service.AssessmentResult, error)
}

type DailyAssessmentController struct {
	Service DailyAssessmentUseCase
}

func NewDailyAssessmentController(svc DailyAssessmentUseCase) *DailyAssessmentController {
	return &DailyAssessmentController{Service: svc}
}

type ReplaceQuestionRequest struct {
	DisplayOrder int `json:"displayOrder" binding:"required"`
}

type SubmitAssessmentRequest struct {
	Answers []service.SubmitAnswer `json:"answers" binding:"required,dive"`
}

func childIDParam(ctx *gin.Context) (uint, bool) {
	id, ok := util.ParseID(ctx.Param("childId"))
	if !ok {
		util.BadRequest(ctx, "invalid childId")
	}
	return id, ok
}

// @Summary 开始今日测评
// @Description 随机抽取 5 道适龄题目并创建测评会话
// @Tags 每日测评
// @Produce json
// @Security BearerAuth
// @Param childId path int true "孩子ID"
// @Success 201 {object} util.Response{data=service.BeginResult}
// @Failure 402 {object} util.Response "免费体验已使用"
// @Failure 409 {object} util.Response "今日已提交或题库不足"
// @Router /api/children/{childId}/daily-assessment/sessions [post]
func (c *DailyAssessmentController) Begin(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	childID, ok := childIDParam(ctx)
	if !ok {
		return
	}

	res, err := c.Service.Begin(ctx.Request.Context(), user.UserID, childID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// @Summary 换一题
// @Tags 每日测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param childId path int true "孩子ID"
// @Param sessionId path string true "会话ID"
// @Param body body ReplaceQuestionRequest true "需要替换的题目位置(1-5)"
// @Success 200 {object} util.Response{data=service.ReplaceResult}
// @Failure 400 {object} util.Response "位置非法或会话已过期"
// @Router /api/children/{childId}/daily-assessment/sessions/{sessionId}/replace [post]
func (c *DailyAssessmentController) Replace(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	childID, ok := childIDParam(ctx)
	if !ok {
		return
	}

	var req ReplaceQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.Replace(ctx.Request.Context(), user.UserID, ctx.Param("sessionId"), childID, req.DisplayOrder)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary 提交今日测评
// @Tags 每日测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param childId path int true "孩子ID"
// @Param sessionId path string true "会话ID"
// @Param body body SubmitAssessmentRequest true "5 道题的作答"
// @Success 201 {object} util.Response{data=service.SubmitResult}
// @Failure 422 {object} util.Response "作答未覆盖当前题目"
// @Router /api/children/{childId}/daily-assessment/sessions/{sessionId}/submit [post]
func (c *DailyAssessmentController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	childID, ok := childIDParam(ctx)
	if !ok {
		return
	}

	var req SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.Submit(ctx.Request.Context(), user.UserID, ctx.Param("sessionId"), childID, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// @Summary 今日测评状态
// @Tags 每日测评
// @Produce json
// @Security BearerAuth
// @Param childId path int true "孩子ID"
// @Success 200 {object} util.Response{data=service.TodayStatus}
// @Router /api/children/{childId}/daily-assessment/today [get]
func (c *DailyAssessmentController) Today(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	childID, ok := childIDParam(ctx)
	if !ok {
		return
	}

	status, err := c.Service.TodayStatus(ctx.Request.Context(), user.UserID, childID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// @Summary 历史测评
// @Tags 每日测评
// @Produce json
// @Security BearerAuth
// @Param childId path int true "孩子ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/children/{childId}/assessments [get]
func (c *DailyAssessmentController) History(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	childID, ok := childIDParam(ctx)
	if !ok {
		return
	}
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"), 20, 100)

	list, total, err := c.Service.ListHistory(ctx.Request.Context(), user.UserID, childID, page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  list,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 测评结果详情
// @Tags 每日测评
// @Produce json
// @Security BearerAuth
// @Param id path int true "测评ID"
// @Success 200 {object} util.Response{data=service.AssessmentResult}
// @Failure 403 {object} util.Response "不属于当前用户"
// @Router /api/assessments/{id} [get]
func (c *DailyAssessmentController) Result(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}

	result, err := c.Service.GetResult(ctx.Request.Context(), user.UserID, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
