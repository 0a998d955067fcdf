package service

import (
	"child_growth_backend/internal/util"
	"time"
	_ "time/tzdata"
)

// BizClock 返回业务时区下的当前时间，"每日一次"以该时区的自然日为准
type BizClock interface {
	Now() time.Time
}

type ZonedClock struct {
	loc *time.Location
}

func NewZonedClock(timezone string) (*ZonedClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &ZonedClock{loc: loc}, nil
}

func (c *ZonedClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// BizDay 格式化为 YYYY-MM-DD
func BizDay(t time.Time) string {
	return t.Format(util.DateFormat)
}
