package model

import "time"

// QuestionsPerSession 每日测评固定题量
const QuestionsPerSession = 5

// AssessmentSession 进行中的每日测评，只存在于会话存储中
type AssessmentSession struct {
	SessionID         string    `json:"sessionId"`
	UserID            uint      `json:"userId"`
	ChildID           uint      `json:"childId"`
	BizDay            string    `json:"bizDay"`
	QuestionIDs       []uint    `json:"questionIds"`
	ServedQuestionIDs []uint    `json:"servedQuestionIds"`
	CreatedAt         time.Time `json:"createdAt"`
}

func NewAssessmentSession(sessionID string, userID, childID uint, bizDay string, questionIDs []uint, now time.Time) *AssessmentSession {
	current := append([]uint(nil), questionIDs...)
	served := append([]uint(nil), questionIDs...)
	return &AssessmentSession{
		SessionID:         sessionID,
		UserID:            userID,
		ChildID:           childID,
		BizDay:            bizDay,
		QuestionIDs:       current,
		ServedQuestionIDs: served,
		CreatedAt:         now,
	}
}

// ReplaceAt 替换指定位置（从 1 开始）的题目，并记录为已展示
func (s *AssessmentSession) ReplaceAt(displayOrder int, questionID uint) {
	s.QuestionIDs[displayOrder-1] = questionID
	if !s.WasServed(questionID) {
		s.ServedQuestionIDs = append(s.ServedQuestionIDs, questionID)
	}
}

func (s *AssessmentSession) WasServed(questionID uint) bool {
	for _, id := range s.ServedQuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// Valid 检查题组长度和已展示集合的包含关系
func (s *AssessmentSession) Valid() bool {
	if len(s.QuestionIDs) != QuestionsPerSession {
		return false
	}
	for _, id := range s.QuestionIDs {
		if !s.WasServed(id) {
			return false
		}
	}
	return true
}
