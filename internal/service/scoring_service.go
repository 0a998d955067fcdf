package service

import (
	"child_growth_backend/internal/model"
	"child_growth_backend/internal/repository"
	"context"

	"github.com/pkg/errors"
)

// ScoringService 汇总测评的维度快照分值
type ScoringService struct {
	Repo *repository.AssessmentRepository
}

func NewScoringService(repo *repository.AssessmentRepository) *ScoringService {
	return &ScoringService{Repo: repo}
}

func (s *ScoringService) Aggregate(ctx context.Context, assessmentID uint) ([]model.DimensionScore, error) {
	all, err := s.AggregateMany(ctx, []uint{assessmentID})
	if err != nil {
		return nil, err
	}
	return all[assessmentID], nil
}

// AggregateMany 没有任何得分记录的测评返回空切片
func (s *ScoringService) AggregateMany(ctx context.Context, assessmentIDs []uint) (map[uint][]model.DimensionScore, error) {
	sums, err := s.Repo.SumDimensionScores(ctx, assessmentIDs...)
	if err != nil {
		return nil, errors.Wrap(err, "sum dimension scores")
	}

	result := make(map[uint][]model.DimensionScore, len(assessmentIDs))
	for _, id := range assessmentIDs {
		result[id] = toDimensionScores(sums[id])
	}
	return result, nil
}

func toDimensionScores(sums map[string]int) []model.DimensionScore {
	scores := make([]model.DimensionScore, 0, len(sums))
	for code, total := range sums {
		name := code
		if d, ok := model.LookupDimension(code); ok {
			name = d.Name
		}
		scores = append(scores, model.DimensionScore{Code: code, Name: name, Score: total})
	}
	model.SortDimensionScores(scores)
	return scores
}
