package models

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

const (
	NameCodeMax = 9999
	NameSortMax = 99

	ColNameCode = "コード"
	ColNameSort = "表示順"
)

// NameMst maps a numeric code to a display label. Other tables refer to it
// by code only.
type NameMst struct {
	Cd    int    `gorm:"column:コード;primaryKey;autoIncrement:false" json:"cd"    validate:"min=0,max=9999"`
	Nm    string `gorm:"column:名称;type:varchar(10);not null"       json:"nm"    validate:"max=10"`
	Digit int    `gorm:"column:表示桁数;not null"                     json:"digit" validate:"min=0"`
	Sort  int    `gorm:"column:表示順;not null;index"                json:"sort"  validate:"min=0,max=99"`
	Memo  string `gorm:"column:備考;type:text;not null"             json:"memo"`
	Timestamps
}

func (NameMst) TableName() string {
	return "name_mst"
}

func (n NameMst) String() string {
	return n.Nm
}

// DisplayCode zero-pads the code to Digit places. Digit 0 leaves it as is.
func (n NameMst) DisplayCode() string {
	if n.Digit <= 0 {
		return strconv.Itoa(n.Cd)
	}
	return fmt.Sprintf("%0*d", n.Digit, n.Cd)
}

func (n *NameMst) BeforeSave(tx *gorm.DB) error {
	return Validate(n)
}
