package service

import (
	"child_growth_backend/internal/model"
	"child_growth_backend/internal/repository"
	"child_growth_backend/internal/util"
	"child_growth_backend/pkg/logger"
	"child_growth_backend/pkg/monitoring"
	"child_growth_backend/pkg/tracing"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ChildLookup interface {
	FindByID(ctx context.Context, id uint) (*model.Child, error)
}

// QuestionPool 题库随机抽题
type QuestionPool interface {
	SampleByAge(ctx context.Context, ageYears, n int) ([]uint, error)
	SampleByAgeExcluding(ctx context.Context, ageYears int, excluded []uint) (uint, bool, error)
}

// QuestionSnapshot 按 ID 加载题目内容，LoadItems 不包含维度分值
type QuestionSnapshot interface {
	LoadItems(ctx context.Context, ids []uint) (map[uint]model.Question, error)
	LoadForGrading(ctx context.Context, ids []uint) (map[uint]model.Question, error)
	FindWithOptions(ctx context.Context, ids []uint) (map[uint]model.Question, error)
}

type DailyAssessmentService struct {
	DB          *gorm.DB
	Children    ChildLookup
	Pool        QuestionPool
	Questions   QuestionSnapshot
	Sessions    repository.SessionStore
	Assessments *repository.AssessmentRepository
	Entitlement EntitlementGate
	Scoring     *ScoringService
	Clock       BizClock

	sessionTTL atomic.Int64
}

func NewDailyAssessmentService(
	db *gorm.DB,
	children ChildLookup,
	pool QuestionPool,
	questions QuestionSnapshot,
	sessions repository.SessionStore,
	assessments *repository.AssessmentRepository,
	entitlement EntitlementGate,
	scoring *ScoringService,
	clock BizClock,
	sessionTTL time.Duration,
) *DailyAssessmentService {
	s := &DailyAssessmentService{
		DB:          db,
		Children:    children,
		Pool:        pool,
		Questions:   questions,
		Sessions:    sessions,
		Assessments: assessments,
		Entitlement: entitlement,
		Scoring:     scoring,
		Clock:       clock,
	}
	s.SetSessionTTL(sessionTTL)
	return s
}

// SetSessionTTL 配置热更新时调用，只影响之后保存的会话
func (s *DailyAssessmentService) SetSessionTTL(ttl time.Duration) {
	s.sessionTTL.Store(int64(ttl))
}

func (s *DailyAssessmentService) SessionTTL() time.Duration {
	return time.Duration(s.sessionTTL.Load())
}

type OptionView struct {
	ID             uint    `json:"id"`
	Content        string  `json:"content"`
	SortNo         int     `json:"sortNo"`
	SuggestFlag    bool    `json:"suggestFlag"`
	ImprovementTip *string `json:"improvementTip,omitempty"`
}

type QuestionItemView struct {
	DisplayOrder int                `json:"displayOrder"`
	QuestionID   uint               `json:"questionId"`
	Content      string             `json:"content"`
	Type         model.QuestionType `json:"type" swaggertype:"string" enums:"SINGLE,MULTI"`
	Options      []OptionView       `json:"options"`
}

type BeginResult struct {
	SessionID string             `json:"sessionId"`
	Items     []QuestionItemView `json:"items"`
}

type ReplaceResult struct {
	DisplayOrder int              `json:"displayOrder"`
	Item         QuestionItemView `json:"item"`
}

type SubmitAnswer struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	OptionIDs  []uint `json:"optionIds"`
}

type SubmitResult struct {
	AssessmentID    uint                   `json:"assessmentId"`
	DimensionScores []model.DimensionScore `json:"dimensionScores"`
}

func startSpan(ctx context.Context, name string, userID, childID uint) (context.Context, trace.Span) {
	return tracing.Tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.Int64("child.id", int64(childID)),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(util.KindOf(err)))
	}
	span.End()
}

// Begin 为孩子开始今日测评：校验归属与资格，随机抽取 5 道适龄题并创建会话
func (s *DailyAssessmentService) Begin(ctx context.Context, userID, childID uint) (res *BeginResult, err error) {
	ctx, span := startSpan(ctx, "daily_assessment.begin", userID, childID)
	defer func() { endSpan(span, err) }()

	child, err := s.ownedChild(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	if err := s.Entitlement.RequireCanStart(ctx, userID); err != nil {
		return nil, s.internal(err, "check entitlement")
	}

	now := s.Clock.Now()
	bizDay := BizDay(now)
	if err := s.ensureNotSubmitted(ctx, userID, childID, bizDay); err != nil {
		return nil, err
	}

	age := child.AgeOn(now)
	ids, err := s.Pool.SampleByAge(ctx, age, model.QuestionsPerSession)
	if err != nil {
		return nil, s.internal(err, "sample questions")
	}
	if len(ids) < model.QuestionsPerSession {
		monitoring.PoolExhausted.WithLabelValues("begin").Inc()
		logger.WithContext(ctx).Warn("Question pool exhausted",
			zap.Int("age", age),
			zap.Int("eligible", len(ids)),
		)
		return nil, util.ErrQuestionPoolExhausted
	}

	items, err := s.loadItemViews(ctx, ids)
	if err != nil {
		return nil, err
	}

	session := model.NewAssessmentSession(uuid.NewString(), userID, childID, bizDay, ids, now)
	if err := s.Sessions.Save(ctx, session, s.SessionTTL()); err != nil {
		return nil, s.internal(err, "save session")
	}

	monitoring.SessionsStarted.Inc()
	logger.WithContext(ctx).Info("Daily assessment session started",
		zap.Uint("userID", userID),
		zap.Uint("childID", childID),
		zap.String("sessionID", session.SessionID),
		zap.Int("age", age),
	)
	return &BeginResult{SessionID: session.SessionID, Items: items}, nil
}

// Replace 替换指定位置的题目，新题不会是本次会话中出现过的任何题目
func (s *DailyAssessmentService) Replace(ctx context.Context, userID uint, sessionID string, childID uint, displayOrder int) (res *ReplaceResult, err error) {
	ctx, span := startSpan(ctx, "daily_assessment.replace", userID, childID)
	defer func() { endSpan(span, err) }()

	child, err := s.ownedChild(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now()
	session, err := s.activeSession(ctx, userID, childID, sessionID, now)
	if err != nil {
		return nil, err
	}
	if displayOrder < 1 || displayOrder > model.QuestionsPerSession {
		return nil, util.NewError(util.KindInvalidRequest, fmt.Sprintf("displayOrder must be between 1 and %d", model.QuestionsPerSession))
	}

	age := child.AgeOn(now)
	newID, ok, err := s.Pool.SampleByAgeExcluding(ctx, age, session.ServedQuestionIDs)
	if err != nil {
		return nil, s.internal(err, "sample replacement")
	}
	if !ok {
		monitoring.PoolExhausted.WithLabelValues("replace").Inc()
		return nil, util.ErrQuestionPoolExhausted
	}

	views, err := s.loadItemViews(ctx, []uint{newID})
	if err != nil {
		return nil, err
	}
	item := views[0]
	item.DisplayOrder = displayOrder

	session.ReplaceAt(displayOrder, newID)
	if err := s.Sessions.Save(ctx, session, s.SessionTTL()); err != nil {
		return nil, s.internal(err, "save session")
	}

	monitoring.QuestionsReplaced.Inc()
	logger.WithContext(ctx).Debug("Question replaced",
		zap.String("sessionID", sessionID),
		zap.Int("displayOrder", displayOrder),
		zap.Uint("questionID", newID),
	)
	return &ReplaceResult{DisplayOrder: displayOrder, Item: item}, nil
}

// Submit 校验答案并在一个事务内保存测评，提交成功后删除会话并返回维度得分
func (s *DailyAssessmentService) Submit(ctx context.Context, userID uint, sessionID string, childID uint, answers []SubmitAnswer) (res *SubmitResult, err error) {
	ctx, span := startSpan(ctx, "daily_assessment.submit", userID, childID)
	defer func() {
		if err != nil {
			monitoring.Submissions.WithLabelValues(string(util.KindOf(err))).Inc()
		} else {
			monitoring.Submissions.WithLabelValues("ok").Inc()
		}
		endSpan(span, err)
	}()

	if _, err := s.ownedChild(ctx, userID, childID); err != nil {
		return nil, err
	}
	// 业务日和提交时间取同一时刻，避免跨零点时二者不一致
	now := s.Clock.Now()
	// 已提交的会话已被删除，先查当日记录以返回 DAILY_ASSESSMENT_ALREADY_SUBMITTED
	if err := s.ensureNotSubmitted(ctx, userID, childID, BizDay(now)); err != nil {
		return nil, err
	}
	session, err := s.activeSession(ctx, userID, childID, sessionID, now)
	if err != nil {
		return nil, err
	}

	selections, err := collectSelections(session, answers)
	if err != nil {
		return nil, err
	}

	questions, err := s.Questions.LoadForGrading(ctx, session.QuestionIDs)
	if err != nil {
		return nil, s.internal(err, "load questions")
	}
	chosen := make(map[uint][]model.QuestionOption, len(session.QuestionIDs))
	for _, qid := range session.QuestionIDs {
		q, ok := questions[qid]
		if !ok {
			return nil, util.NewError(util.KindNotFound, fmt.Sprintf("question %d is no longer available", qid))
		}
		opts, err := selectOptions(q, selections[qid])
		if err != nil {
			return nil, err
		}
		chosen[qid] = opts
	}

	assessmentID, err := s.persist(ctx, session, chosen, now)
	if err != nil {
		return nil, s.internal(err, "persist assessment")
	}

	// 事务提交后才删除会话，失败时客户端可以用同一会话重试
	if err := s.Sessions.Delete(ctx, userID, childID, sessionID); err != nil {
		logger.WithContext(ctx).Warn("Failed to delete consumed session",
			zap.String("sessionID", sessionID),
			zap.Error(err),
		)
	}

	// 测评已经落库，汇总失败不能报错，否则重试只会得到 ALREADY_SUBMITTED
	scores, err := s.Scoring.Aggregate(ctx, assessmentID)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to aggregate submitted assessment",
			zap.Uint("assessmentID", assessmentID),
			zap.Error(err),
		)
		scores = []model.DimensionScore{}
	}

	logger.WithContext(ctx).Info("Daily assessment submitted",
		zap.Uint("userID", userID),
		zap.Uint("childID", childID),
		zap.Uint("assessmentID", assessmentID),
	)
	return &SubmitResult{AssessmentID: assessmentID, DimensionScores: scores}, nil
}

func (s *DailyAssessmentService) persist(ctx context.Context, session *model.AssessmentSession, chosen map[uint][]model.QuestionOption, now time.Time) (uint, error) {
	var assessmentID uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Assessments.WithTx(tx)

		assessment := &model.Assessment{
			UserID:      session.UserID,
			ChildID:     session.ChildID,
			BizDay:      BizDay(now),
			SubmittedAt: now,
		}
		if err := repo.CreateAssessment(assessment); err != nil {
			return err
		}
		assessmentID = assessment.ID

		for i, qid := range session.QuestionIDs {
			item := &model.AssessmentItem{
				AssessmentID: assessment.ID,
				QuestionID:   qid,
				DisplayOrder: i + 1,
			}
			if err := repo.CreateItem(item); err != nil {
				return errors.Wrap(err, "create item")
			}

			for _, opt := range chosen[qid] {
				answer := &model.AssessmentAnswer{
					AssessmentID:     assessment.ID,
					AssessmentItemID: item.ID,
					OptionID:         opt.ID,
				}
				if err := repo.CreateAnswer(answer); err != nil {
					return errors.Wrap(err, "create answer")
				}

				snapshot := make([]model.AssessmentDimensionScore, 0, len(opt.Scores))
				for _, sc := range opt.Scores {
					snapshot = append(snapshot, model.AssessmentDimensionScore{
						AssessmentID:       assessment.ID,
						AssessmentAnswerID: answer.ID,
						DimensionCode:      sc.DimensionCode,
						Score:              sc.Score,
					})
				}
				if err := repo.CreateDimensionScores(snapshot); err != nil {
					return errors.Wrap(err, "create dimension scores")
				}
			}
		}

		return s.Entitlement.OnSubmitted(tx, session.UserID)
	})
	if err != nil {
		return 0, err
	}
	return assessmentID, nil
}

// collectSelections 答案必须恰好覆盖会话当前的 5 道题
func collectSelections(session *model.AssessmentSession, answers []SubmitAnswer) (map[uint][]uint, error) {
	if len(answers) != model.QuestionsPerSession {
		return nil, util.ErrDailyIncomplete
	}
	selections := make(map[uint][]uint, len(answers))
	for _, a := range answers {
		selections[a.QuestionID] = append(selections[a.QuestionID], a.OptionIDs...)
	}
	if len(selections) != model.QuestionsPerSession {
		return nil, util.ErrDailyIncomplete
	}
	for _, qid := range session.QuestionIDs {
		if _, ok := selections[qid]; !ok {
			return nil, util.ErrDailyIncomplete
		}
	}
	return selections, nil
}

// selectOptions 去重后校验选项归属和题型数量，按选项排序返回
func selectOptions(q model.Question, optionIDs []uint) ([]model.QuestionOption, error) {
	selected := make(map[uint]bool, len(optionIDs))
	for _, id := range optionIDs {
		selected[id] = true
	}

	active := make(map[uint]bool, len(q.Options))
	for _, opt := range q.Options {
		active[opt.ID] = true
	}
	for id := range selected {
		if !active[id] {
			return nil, util.NewError(util.KindInvalidRequest, fmt.Sprintf("option %d does not belong to question %d", id, q.ID))
		}
	}
	if !q.Type.AcceptsSelection(len(selected)) {
		return nil, util.NewError(util.KindInvalidRequest, fmt.Sprintf("question %d (%s) does not accept %d selected options", q.ID, q.Type, len(selected)))
	}

	opts := make([]model.QuestionOption, 0, len(selected))
	for _, opt := range q.Options {
		if selected[opt.ID] {
			opts = append(opts, opt)
		}
	}
	return opts, nil
}

func (s *DailyAssessmentService) ownedChild(ctx context.Context, userID, childID uint) (*model.Child, error) {
	child, err := s.Children.FindByID(ctx, childID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewError(util.KindNotFound, "child not found")
	} else if err != nil {
		return nil, s.internal(err, "load child")
	}
	if child.UserID != userID {
		return nil, util.ErrForbiddenResource
	}
	return child, nil
}

// activeSession 会话不存在、已过期或跨越业务日时都视为过期
func (s *DailyAssessmentService) activeSession(ctx context.Context, userID, childID uint, sessionID string, now time.Time) (*model.AssessmentSession, error) {
	session, err := s.Sessions.Find(ctx, userID, childID, sessionID)
	if err != nil {
		return nil, s.internal(err, "load session")
	}
	if session == nil || session.UserID != userID || session.ChildID != childID {
		return nil, util.ErrSessionExpired
	}
	if session.BizDay != BizDay(now) {
		if err := s.Sessions.Delete(ctx, userID, childID, sessionID); err != nil {
			logger.WithContext(ctx).Warn("Failed to delete stale session", zap.String("sessionID", sessionID), zap.Error(err))
		}
		return nil, util.ErrSessionExpired
	}
	if !session.Valid() {
		return nil, util.NewError(util.KindInternal, "corrupted session state")
	}
	return session, nil
}

func (s *DailyAssessmentService) ensureNotSubmitted(ctx context.Context, userID, childID uint, bizDay string) error {
	existing, err := s.Assessments.FindForBizDay(ctx, userID, childID, bizDay)
	if err != nil {
		return s.internal(err, "check daily assessment")
	}
	if existing != nil {
		return util.ErrDailyAlreadySubmitted
	}
	return nil
}

// loadItemViews 按 ids 顺序返回题目视图，题目在抽取后被停用属于内部错误
func (s *DailyAssessmentService) loadItemViews(ctx context.Context, ids []uint) ([]QuestionItemView, error) {
	questions, err := s.Questions.LoadItems(ctx, ids)
	if err != nil {
		return nil, s.internal(err, "load items")
	}

	views := make([]QuestionItemView, 0, len(ids))
	for i, id := range ids {
		q, ok := questions[id]
		if !ok {
			return nil, util.NewError(util.KindInternal, fmt.Sprintf("question %d vanished after draw", id))
		}
		views = append(views, toItemView(q, i+1))
	}
	return views, nil
}

func toItemView(q model.Question, displayOrder int) QuestionItemView {
	opts := make([]OptionView, 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, OptionView{
			ID:             o.ID,
			Content:        o.Content,
			SortNo:         o.SortNo,
			SuggestFlag:    o.SuggestFlag,
			ImprovementTip: o.ImprovementTip,
		})
	}
	return QuestionItemView{
		DisplayOrder: displayOrder,
		QuestionID:   q.ID,
		Content:      q.Content,
		Type:         q.Type,
		Options:      opts,
	}
}

// internal 业务错误原样返回，其它错误包装为 INTERNAL_ERROR
func (s *DailyAssessmentService) internal(err error, op string) error {
	var appErr *util.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return util.WrapError(util.KindInternal, op, err)
}
