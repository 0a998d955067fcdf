package model

import "time"

// swagger:model DailyAssessment
type Assessment struct {
	RecordModel
	UserID      uint      `gorm:"type:bigint unsigned;uniqueIndex:uk_assessment_daily,priority:1" json:"userId"`
	ChildID     uint      `gorm:"type:bigint unsigned;uniqueIndex:uk_assessment_daily,priority:2" json:"childId"`
	BizDay      string    `gorm:"size:10;not null;uniqueIndex:uk_assessment_daily,priority:3" json:"bizDay"`
	SubmittedAt time.Time `gorm:"not null" json:"submittedAt"`
}

func (Assessment) TableName() string {
	return "assessments"
}

type AssessmentItem struct {
	RecordModel
	AssessmentID uint `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	QuestionID   uint `gorm:"type:bigint unsigned" json:"questionId"`
	DisplayOrder int  `gorm:"not null" json:"displayOrder"`
}

func (AssessmentItem) TableName() string {
	return "assessment_items"
}

type AssessmentAnswer struct {
	RecordModel
	AssessmentID     uint `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	AssessmentItemID uint `gorm:"index;type:bigint unsigned" json:"assessmentItemId"`
	OptionID         uint `gorm:"type:bigint unsigned" json:"optionId"`
}

func (AssessmentAnswer) TableName() string {
	return "assessment_answers"
}

// AssessmentDimensionScore 提交时从选项复制的得分快照，之后修改选项分值不影响已提交结果
type AssessmentDimensionScore struct {
	RecordModel
	AssessmentID       uint   `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	AssessmentAnswerID uint   `gorm:"index;type:bigint unsigned" json:"assessmentAnswerId"`
	DimensionCode      string `gorm:"size:32;not null" json:"dimensionCode"`
	Score              int    `gorm:"not null" json:"score"`
}

func (AssessmentDimensionScore) TableName() string {
	return "assessment_dimension_scores"
}
