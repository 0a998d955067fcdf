package database

import (
	"child_growth_backend/internal/model"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type questionBank struct {
	Questions []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	Content  string       `yaml:"content"`
	Type     string       `yaml:"type"`
	MinAge   int          `yaml:"minAge"`
	MaxAge   int          `yaml:"maxAge"`
	Inactive bool         `yaml:"inactive"`
	Options  []seedOption `yaml:"options"`
}

type seedOption struct {
	Content string         `yaml:"content"`
	SortNo  int            `yaml:"sortNo"`
	Suggest bool           `yaml:"suggest"`
	Tip     string         `yaml:"tip"`
	Scores  map[string]int `yaml:"scores"`
}

// SeedQuestions 从 YAML 题库导入题目、选项及维度分值，整批在一个事务内写入
func SeedQuestions(db *gorm.DB, r io.Reader) (int, error) {
	var bank questionBank
	if err := yaml.NewDecoder(r).Decode(&bank); err != nil {
		return 0, errors.Wrap(err, "decode question bank")
	}

	questions := make([]model.Question, 0, len(bank.Questions))
	for i, sq := range bank.Questions {
		q, err := sq.toModel()
		if err != nil {
			return 0, errors.Wrapf(err, "question #%d", i+1)
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return 0, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Create 会连同 Options 和 Scores 一起写入
		return tx.Create(&questions).Error
	})
	if err != nil {
		return 0, errors.Wrap(err, "insert question bank")
	}
	return len(questions), nil
}

func (sq seedQuestion) toModel() (model.Question, error) {
	qt, err := model.ParseQuestionType(sq.Type)
	if err != nil {
		return model.Question{}, err
	}
	if sq.Content == "" {
		return model.Question{}, fmt.Errorf("content is required")
	}
	if sq.MinAge < 0 || sq.MinAge > sq.MaxAge {
		return model.Question{}, fmt.Errorf("invalid age range [%d,%d]", sq.MinAge, sq.MaxAge)
	}
	if len(sq.Options) < 2 {
		return model.Question{}, fmt.Errorf("at least two options are required")
	}

	q := model.Question{
		Content:  sq.Content,
		Type:     qt,
		MinAge:   sq.MinAge,
		MaxAge:   sq.MaxAge,
		IsActive: !sq.Inactive,
	}
	for i, so := range sq.Options {
		opt := model.QuestionOption{
			Content:     so.Content,
			SuggestFlag: so.Suggest,
			SortNo:      so.SortNo,
			IsActive:    true,
		}
		if opt.SortNo == 0 {
			opt.SortNo = i + 1
		}
		if so.Tip != "" {
			tip := so.Tip
			opt.ImprovementTip = &tip
		}

		codes := make([]string, 0, len(so.Scores))
		for code := range so.Scores {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			if _, ok := model.LookupDimension(code); !ok {
				return model.Question{}, fmt.Errorf("option %d: unknown dimension %q", i+1, code)
			}
			opt.Scores = append(opt.Scores, model.OptionDimensionScore{
				DimensionCode: code,
				Score:         so.Scores[code],
			})
		}
		q.Options = append(q.Options, opt)
	}
	return q, nil
}
