package models

import "gorm.io/gorm"

// KiriTbl records one parent slip split into child slips. The child number
// is the key; a parent number repeats once per child.
type KiriTbl struct {
	Denno  string `gorm:"column:親伝票番号;type:varchar(14);not null;index"  json:"denno"  validate:"max=14"`
	SDenno string `gorm:"column:子伝票番号;type:varchar(14);primaryKey"      json:"sDenno" validate:"required,max=14"`
	Timestamps
}

func (KiriTbl) TableName() string {
	return "kiri_tble"
}

func (k KiriTbl) String() string {
	return k.SDenno
}

func (k *KiriTbl) BeforeSave(tx *gorm.DB) error {
	return Validate(k)
}

const (
	ColKiriParent = "親伝票番号"
	ColKiriChild  = "子伝票番号"
)
