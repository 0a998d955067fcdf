package service

import (
	"child_growth_backend/internal/model"
	"child_growth_backend/internal/util"
	"child_growth_backend/pkg/logger"
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TodayStatus struct {
	BizDay       string `json:"bizDay"`
	Submitted    bool   `json:"submitted"`
	AssessmentID *uint  `json:"assessmentId,omitempty"`
}

type AssessmentSummary struct {
	ID              uint                   `json:"id"`
	ChildID         uint                   `json:"childId"`
	BizDay          string                 `json:"bizDay"`
	SubmittedAt     time.Time              `json:"submittedAt"`
	DimensionScores []model.DimensionScore `json:"dimensionScores"`
}

type SelectedOptionView struct {
	ID             uint    `json:"id"`
	Content        string  `json:"content"`
	ImprovementTip *string `json:"improvementTip,omitempty"`
}

type ResultItemView struct {
	DisplayOrder    int                  `json:"displayOrder"`
	QuestionID      uint                 `json:"questionId"`
	Content         string               `json:"content"`
	Type            model.QuestionType   `json:"type" swaggertype:"string" enums:"SINGLE,MULTI"`
	SelectedOptions []SelectedOptionView `json:"selectedOptions"`
}

type AssessmentResult struct {
	AssessmentSummary
	Items []ResultItemView `json:"items"`
}

// TodayStatus 当前业务日是否已经提交过
func (s *DailyAssessmentService) TodayStatus(ctx context.Context, userID, childID uint) (*TodayStatus, error) {
	if _, err := s.ownedChild(ctx, userID, childID); err != nil {
		return nil, err
	}
	bizDay := BizDay(s.Clock.Now())
	existing, err := s.Assessments.FindForBizDay(ctx, userID, childID, bizDay)
	if err != nil {
		return nil, s.internal(err, "check daily assessment")
	}

	status := &TodayStatus{BizDay: bizDay}
	if existing != nil {
		status.Submitted = true
		status.AssessmentID = &existing.ID
	}
	return status, nil
}

func (s *DailyAssessmentService) ListHistory(ctx context.Context, userID, childID uint, page, limit int) ([]AssessmentSummary, int64, error) {
	if _, err := s.ownedChild(ctx, userID, childID); err != nil {
		return nil, 0, err
	}

	assessments, total, err := s.Assessments.ListByChild(ctx, userID, childID, page, limit)
	if err != nil {
		return nil, 0, s.internal(err, "list assessments")
	}

	ids := make([]uint, 0, len(assessments))
	for _, a := range assessments {
		ids = append(ids, a.ID)
	}
	scores, err := s.Scoring.AggregateMany(ctx, ids)
	if err != nil {
		return nil, 0, s.internal(err, "aggregate scores")
	}

	summaries := make([]AssessmentSummary, 0, len(assessments))
	for _, a := range assessments {
		summaries = append(summaries, toSummary(a, scores[a.ID]))
	}
	return summaries, total, nil
}

// GetResult 测评详情，题目和选项按提交时的 ID 展示，已停用的内容同样返回
func (s *DailyAssessmentService) GetResult(ctx context.Context, userID, assessmentID uint) (*AssessmentResult, error) {
	a, err := s.Assessments.FindByID(ctx, assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewError(util.KindNotFound, "assessment not found")
	} else if err != nil {
		return nil, s.internal(err, "load assessment")
	}
	if a.UserID != userID {
		return nil, util.ErrForbiddenResource
	}

	items, err := s.Assessments.FindItems(ctx, a.ID)
	if err != nil {
		return nil, s.internal(err, "load items")
	}
	answers, err := s.Assessments.FindAnswers(ctx, a.ID)
	if err != nil {
		return nil, s.internal(err, "load answers")
	}
	scores, err := s.Scoring.Aggregate(ctx, a.ID)
	if err != nil {
		return nil, s.internal(err, "aggregate scores")
	}

	questionIDs := make([]uint, 0, len(items))
	for _, it := range items {
		questionIDs = append(questionIDs, it.QuestionID)
	}
	questions, err := s.Questions.FindWithOptions(ctx, questionIDs)
	if err != nil {
		return nil, s.internal(err, "load questions")
	}

	selected := make(map[uint]map[uint]bool, len(items))
	for _, ans := range answers {
		if selected[ans.AssessmentItemID] == nil {
			selected[ans.AssessmentItemID] = make(map[uint]bool)
		}
		selected[ans.AssessmentItemID][ans.OptionID] = true
	}

	result := &AssessmentResult{
		AssessmentSummary: toSummary(*a, scores),
		Items:             make([]ResultItemView, 0, len(items)),
	}
	for _, it := range items {
		q, ok := questions[it.QuestionID]
		if !ok {
			// 题目被物理删除后无法还原题干，跳过该题，维度得分仍来自快照
			logger.WithContext(ctx).Warn("Question missing for assessment item",
				zap.Uint("assessmentID", a.ID),
				zap.Uint("questionID", it.QuestionID),
			)
			continue
		}
		view := ResultItemView{
			DisplayOrder:    it.DisplayOrder,
			QuestionID:      it.QuestionID,
			Content:         q.Content,
			Type:            q.Type,
			SelectedOptions: []SelectedOptionView{},
		}
		for _, opt := range q.Options {
			if !selected[it.ID][opt.ID] {
				continue
			}
			sel := SelectedOptionView{ID: opt.ID, Content: opt.Content}
			if opt.SuggestFlag {
				sel.ImprovementTip = opt.ImprovementTip
			}
			view.SelectedOptions = append(view.SelectedOptions, sel)
		}
		result.Items = append(result.Items, view)
	}
	return result, nil
}

func toSummary(a model.Assessment, scores []model.DimensionScore) AssessmentSummary {
	if scores == nil {
		scores = []model.DimensionScore{}
	}
	return AssessmentSummary{
		ID:              a.ID,
		ChildID:         a.ChildID,
		BizDay:          a.BizDay,
		SubmittedAt:     a.SubmittedAt,
		DimensionScores: scores,
	}
}
