package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Nickname        string     `gorm:"size:100" json:"nickname"`
	OpenID          string     `gorm:"size:64;index" json:"-"`
	Avatar          string     `gorm:"size:255" json:"avatar"`
	MemberExpiresAt *time.Time `json:"memberExpiresAt,omitempty"`
	FreeTrialUsed   bool       `gorm:"default:false" json:"freeTrialUsed"`
}

func (User) TableName() string {
	return "users"
}

// IsMember 会员有效期内视为已订阅
func (u *User) IsMember(now time.Time) bool {
	return u.MemberExpiresAt != nil && u.MemberExpiresAt.After(now)
}
