package model

import (
	"database/sql/driver"
	"fmt"
)

// QuestionType 题型，只允许单选和多选
type QuestionType uint8

const (
	QuestionTypeSingle QuestionType = iota + 1
	QuestionTypeMulti
)

func ParseQuestionType(s string) (QuestionType, error) {
	switch s {
	case "SINGLE":
		return QuestionTypeSingle, nil
	case "MULTI":
		return QuestionTypeMulti, nil
	}
	return 0, fmt.Errorf("unknown question type %q", s)
}

func (t QuestionType) String() string {
	switch t {
	case QuestionTypeSingle:
		return "SINGLE"
	case QuestionTypeMulti:
		return "MULTI"
	}
	return fmt.Sprintf("QuestionType(%d)", uint8(t))
}

// AcceptsSelection 校验去重后的选项数量是否符合题型
func (t QuestionType) AcceptsSelection(n int) bool {
	switch t {
	case QuestionTypeSingle:
		return n == 1
	case QuestionTypeMulti:
		return n >= 1
	}
	return false
}

func (t QuestionType) MarshalText() ([]byte, error) {
	if t != QuestionTypeSingle && t != QuestionTypeMulti {
		return nil, fmt.Errorf("invalid question type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *QuestionType) UnmarshalText(b []byte) error {
	v, err := ParseQuestionType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t QuestionType) Value() (driver.Value, error) {
	b, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *QuestionType) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return t.UnmarshalText([]byte(v))
	case []byte:
		return t.UnmarshalText(v)
	}
	return fmt.Errorf("cannot scan %T into QuestionType", src)
}

func (QuestionType) GormDataType() string {
	return "varchar(10)"
}

// swagger:model Question
type Question struct {
	BaseModel
	Content  string           `gorm:"type:text;not null" json:"content"`
	Type     QuestionType     `gorm:"column:question_type;not null" json:"type"`
	MinAge   int              `gorm:"index:idx_question_age;not null" json:"minAge"`
	MaxAge   int              `gorm:"index:idx_question_age;not null" json:"maxAge"`
	IsActive bool             `gorm:"not null;index" json:"isActive"`
	Options  []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionOption 题目选项，一个选项可以同时计入多个能力维度
type QuestionOption struct {
	BaseModel
	QuestionID     uint                   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Content        string                 `gorm:"type:text;not null" json:"content"`
	SuggestFlag    bool                   `gorm:"default:false" json:"suggestFlag"`
	ImprovementTip *string                `gorm:"type:text" json:"improvementTip,omitempty"`
	SortNo         int                    `gorm:"default:0" json:"sortNo"`
	IsActive       bool                   `gorm:"not null" json:"isActive"`
	Scores         []OptionDimensionScore `gorm:"foreignKey:OptionID" json:"scores,omitempty"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}

type OptionDimensionScore struct {
	BaseModel
	OptionID      uint   `gorm:"index;type:bigint unsigned" json:"optionId"`
	DimensionCode string `gorm:"size:32;not null" json:"dimensionCode"`
	Score         int    `gorm:"not null" json:"score"`
}

func (OptionDimensionScore) TableName() string {
	return "option_dimension_scores"
}
