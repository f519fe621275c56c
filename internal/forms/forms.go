// Package forms applies the input-side (blank) policy of each table and turns
// accepted input into models. Strings are plain values: absent and blank are
// the same thing. Numbers and times are pointers so absence is visible.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	. "haisou/internal/models"
	"haisou/internal/utils"
)

const msgNull = "this field cannot be null"

// Decode reads a single JSON object into form, rejecting unknown keys.
func Decode(r io.Reader, form any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(form); err != nil {
		return fmt.Errorf("decode form: %w", err)
	}
	return nil
}

// check validates form tags and lets extra add cross-field failures. The
// result is nil or a *ValidationError labelled with table.
func check(table string, form any, extra func(*ValidationError)) error {
	verr := &ValidationError{Model: table}

	if err := Validate(form); err != nil {
		var fieldErrs *ValidationError
		if !errors.As(err, &fieldErrs) {
			return err
		}
		verr.Fields = append(verr.Fields, fieldErrs.Fields...)
	}
	if extra != nil {
		extra(verr)
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

func notNull(verr *ValidationError, field string, present bool) {
	if !present {
		verr.Add(field, "null", "", msgNull)
	}
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func derefInt(v *int) int {
	return intOr(v, 0)
}

var dateParser = utils.NewDateParser(time.Local)

// DateTime accepts any spelling utils.DateParser knows, e.g. RFC 3339,
// "2024/01/15 10:30" or "2024年1月15日".
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	result := dateParser.Parse(raw)
	if !result.IsValid {
		return fmt.Errorf("unrecognised date %q", raw)
	}
	d.Time = result.ParsedTime
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

func At(t time.Time) *DateTime {
	return &DateTime{Time: t}
}

func (d *DateTime) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func (d *DateTime) value() time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

type KiriForm struct {
	Denno  string `json:"denno"  validate:"required,max=14"`
	SDenno string `json:"sDenno" validate:"required,max=14"`
}

func (f KiriForm) Bind() (*KiriTbl, error) {
	if err := check("kiri_tble", f, nil); err != nil {
		return nil, err
	}
	return &KiriTbl{Denno: f.Denno, SDenno: f.SDenno}, nil
}

type HaiinfoForm struct {
	Denno     string    `json:"denno"     validate:"required,max=14"`
	DenType   string    `json:"denType"   validate:"required,max=1"`
	OrderDate *DateTime `json:"orderDate" validate:"required"`
}

func (f HaiinfoForm) Bind() (*HaiinfoTbl, error) {
	if err := check("haiinfo_tbl", f, nil); err != nil {
		return nil, err
	}
	return &HaiinfoTbl{Denno: f.Denno, DenType: f.DenType, OrderDate: f.OrderDate.timePtr()}, nil
}

type IntTestForm struct {
	Int1 *int `json:"int1" validate:"required,min=0"`
	Int2 *int `json:"int2" validate:"omitempty,min=0"`
	Int3 *int `json:"int3" validate:"required,min=0"`
	Int4 *int `json:"int4" validate:"omitempty,min=0"`
}

// Bind accepts a missing int2 as input but the column is NOT NULL without a
// default, so the write is refused here.
func (f IntTestForm) Bind() (*IntTest, error) {
	err := check("int_test", f, func(verr *ValidationError) {
		notNull(verr, "int2", f.Int2 != nil)
	})
	if err != nil {
		return nil, err
	}
	return &IntTest{Int1: derefInt(f.Int1), Int2: derefInt(f.Int2), Int3: f.Int3, Int4: f.Int4}, nil
}

type CharTestForm struct {
	Char1 *int `json:"char1" validate:"required,min=0"`
	Char2 *int `json:"char2" validate:"omitempty,min=0"`
	Char3 *int `json:"char3" validate:"required,min=0"`
	Char4 *int `json:"char4" validate:"omitempty,min=0"`
}

func (f CharTestForm) Bind() (*CharTest, error) {
	err := check("char_test", f, func(verr *ValidationError) {
		notNull(verr, "char2", f.Char2 != nil)
	})
	if err != nil {
		return nil, err
	}
	return &CharTest{Char1: derefInt(f.Char1), Char2: derefInt(f.Char2), Char3: f.Char3, Char4: f.Char4}, nil
}

type DateTestForm struct {
	Date1 *DateTime `json:"date1" validate:"required"`
	Date2 *DateTime `json:"date2"`
	Date3 *DateTime `json:"date3" validate:"required"`
	Date4 *DateTime `json:"date4"`
}

func (f DateTestForm) Bind() (*DateTest, error) {
	err := check("date_test", f, func(verr *ValidationError) {
		notNull(verr, "date2", f.Date2 != nil)
	})
	if err != nil {
		return nil, err
	}
	return &DateTest{Date1: f.Date1.value(), Date2: f.Date2.value(), Date3: f.Date3.timePtr(), Date4: f.Date4.timePtr()}, nil
}

type FieldTestForm struct {
	Int1  *int      `json:"int1"  validate:"required,min=0,max=9999"`
	Int2  *int      `json:"int2"  validate:"omitempty,min=0,max=9999"`
	Char1 string    `json:"char1" validate:"required,max=4"`
	Char2 string    `json:"char2" validate:"max=4"`
	Char3 string    `json:"char3" validate:"max=4"`
	Date1 *DateTime `json:"date1" validate:"required"`
	Date2 *DateTime `json:"date2"`
}

// Bind fills int2 with its column default (0) when omitted. char2 and char3
// fall back to "".
func (f FieldTestForm) Bind() (*FieldTest, error) {
	if err := check("field_test", f, nil); err != nil {
		return nil, err
	}
	return &FieldTest{
		Int1:  derefInt(f.Int1),
		Int2:  intOr(f.Int2, 0),
		Char1: f.Char1,
		Char2: f.Char2,
		Char3: f.Char3,
		Date1: f.Date1.value(),
		Date2: f.Date2.timePtr(),
	}, nil
}

type NameMstForm struct {
	Cd    *int   `json:"cd"    validate:"omitempty,min=0,max=9999"`
	Nm    string `json:"nm"    validate:"max=10"`
	Digit *int   `json:"digit" validate:"omitempty,min=0"`
	Sort  *int   `json:"sort"  validate:"omitempty,min=0,max=99"`
	Memo  string `json:"memo"`
}

func (f NameMstForm) Bind() (*NameMst, error) {
	if err := check("name_mst", f, nil); err != nil {
		return nil, err
	}
	return &NameMst{
		Cd:    intOr(f.Cd, 0),
		Nm:    f.Nm,
		Digit: intOr(f.Digit, 0),
		Sort:  intOr(f.Sort, 0),
		Memo:  f.Memo,
	}, nil
}
