package models

import (
	"time"

	"gorm.io/gorm"
)

type HaiinfoTbl struct {
	Denno     string     `gorm:"column:伝票番号;type:varchar(14);primaryKey"       json:"denno"     validate:"required,max=14"`
	DenType   string     `gorm:"column:伝票タイプ;type:varchar(1);not null;index" json:"denType"   validate:"max=1"`
	OrderDate *time.Time `gorm:"column:注文日時"                                  json:"orderDate"`
	Timestamps
}

func (HaiinfoTbl) TableName() string {
	return "haiinfo_tbl"
}

func (h HaiinfoTbl) String() string {
	return h.Denno
}

// BeforeSave stores the order date in UTC. SQLite compares datetimes as
// text, so mixed offsets would break range queries.
func (h *HaiinfoTbl) BeforeSave(tx *gorm.DB) error {
	if h.OrderDate != nil {
		utc := h.OrderDate.UTC()
		h.OrderDate = &utc
	}
	return Validate(h)
}

const (
	ColHaiinfoDenno     = "伝票番号"
	ColHaiinfoType      = "伝票タイプ"
	ColHaiinfoOrderDate = "注文日時"
)
