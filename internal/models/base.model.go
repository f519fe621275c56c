package models

import (
	"time"
)

// BaseModel is the surrogate key used by tables without a natural one.
type BaseModel struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
}

// Timestamps are shared by every business table: ins_at is written once on
// insert, upd_at on every write.
type Timestamps struct {
	InsAt time.Time `gorm:"column:ins_at;not null;autoCreateTime" json:"insAt"`
	UpdAt time.Time `gorm:"column:upd_at;not null;autoUpdateTime" json:"updAt"`
}
