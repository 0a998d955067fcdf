package model

import (
	"time"

	"gorm.io/datatypes"
)

// swagger:model Child
type Child struct {
	BaseModel
	UserID    uint           `gorm:"index;type:bigint unsigned" json:"userId"`
	Name      string         `gorm:"size:50;not null" json:"name"`
	Gender    string         `gorm:"size:10" json:"gender"`
	BirthDate datatypes.Date `json:"birthDate"`
}

func (Child) TableName() string {
	return "children"
}

// AgeOn 按自然日计算周岁，出生日期在 today 之后时返回 0
func (c *Child) AgeOn(today time.Time) int {
	birth := time.Time(c.BirthDate)
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
