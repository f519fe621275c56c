package forms

import (
	"errors"
	"strings"
	"testing"
	"time"

	. "haisou/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func validationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T: %v", err, err)
	return verr
}

func TestIntTestForm_BlankNullMatrix(t *testing.T) {
	tests := []struct {
		name      string
		form      IntTestForm
		failField string
		failTag   string
	}{
		{
			name: "all present",
			form: IntTestForm{Int1: intPtr(1), Int2: intPtr(2), Int3: intPtr(3), Int4: intPtr(4)},
		},
		{
			name: "optional null column omitted",
			form: IntTestForm{Int1: intPtr(1), Int2: intPtr(2), Int3: intPtr(3)},
		},
		{
			name:      "required input omitted",
			form:      IntTestForm{Int2: intPtr(2), Int3: intPtr(3)},
			failField: "int1",
			failTag:   "required",
		},
		{
			name:      "blank allowed but column not nullable",
			form:      IntTestForm{Int1: intPtr(1), Int3: intPtr(3)},
			failField: "int2",
			failTag:   "null",
		},
		{
			name:      "nullable column still required as input",
			form:      IntTestForm{Int1: intPtr(1), Int2: intPtr(2)},
			failField: "int3",
			failTag:   "required",
		},
		{
			name:      "negative value",
			form:      IntTestForm{Int1: intPtr(-1), Int2: intPtr(2), Int3: intPtr(3)},
			failField: "int1",
			failTag:   "min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := tt.form.Bind()
			if tt.failField == "" {
				require.NoError(t, err)
				assert.Equal(t, *tt.form.Int1, rec.Int1)
				assert.Equal(t, tt.form.Int4, rec.Int4)
				return
			}
			verr := validationError(t, err)
			assert.Equal(t, "int_test", verr.Model)
			assert.True(t, verr.Has(tt.failField, tt.failTag), "got %v", verr)
			assert.Nil(t, rec)
		})
	}
}

func TestCharTestForm_MirrorsIntegerMatrix(t *testing.T) {
	rec, err := CharTestForm{Char1: intPtr(1), Char2: intPtr(0), Char3: intPtr(3)}.Bind()
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Char2)
	assert.Nil(t, rec.Char4)

	_, err = CharTestForm{Char1: intPtr(1), Char3: intPtr(3)}.Bind()
	assert.True(t, validationError(t, err).Has("char2", "null"))
}

func TestDateTestForm_BlankNullMatrix(t *testing.T) {
	now := time.Now()

	rec, err := DateTestForm{Date1: At(now), Date2: At(now), Date3: At(now)}.Bind()
	require.NoError(t, err)
	assert.True(t, rec.Date1.Equal(now))
	require.NotNil(t, rec.Date3)
	assert.Nil(t, rec.Date4)

	_, err = DateTestForm{Date1: At(now), Date3: At(now)}.Bind()
	verr := validationError(t, err)
	assert.True(t, verr.Has("date2", "null"))

	_, err = DateTestForm{Date2: At(now)}.Bind()
	verr = validationError(t, err)
	assert.True(t, verr.Has("date1", "required"))
	assert.True(t, verr.Has("date3", "required"))
}

func TestFieldTestForm_Defaults(t *testing.T) {
	now := time.Now()

	rec, err := FieldTestForm{Int1: intPtr(10), Char1: "AB", Date1: At(now)}.Bind()
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Int2, "omitted int2 falls back to 0")
	assert.Equal(t, "", rec.Char3, "omitted char3 falls back to empty string")
	assert.Nil(t, rec.Date2)

	_, err = FieldTestForm{Int1: intPtr(10000), Int2: intPtr(10000), Char1: "ABCDE", Date1: At(now)}.Bind()
	verr := validationError(t, err)
	assert.True(t, verr.Has("int1", "max"))
	assert.True(t, verr.Has("int2", "max"))
	assert.True(t, verr.Has("char1", "max"))

	_, err = FieldTestForm{Int1: intPtr(1)}.Bind()
	verr = validationError(t, err)
	assert.True(t, verr.Has("char1", "required"))
	assert.True(t, verr.Has("date1", "required"))
}

func TestNameMstForm_Defaults(t *testing.T) {
	rec, err := NameMstForm{}.Bind()
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Cd)
	assert.Equal(t, 0, rec.Digit)
	assert.Equal(t, 0, rec.Sort)
	assert.Equal(t, "", rec.Nm)
	assert.Equal(t, "", rec.Memo)

	_, err = NameMstForm{Cd: intPtr(10000), Sort: intPtr(100)}.Bind()
	verr := validationError(t, err)
	assert.True(t, verr.Has("cd", "max"))
	assert.True(t, verr.Has("sort", "max"))
}

func TestKiriAndHaiinfoForms(t *testing.T) {
	_, err := KiriForm{}.Bind()
	verr := validationError(t, err)
	assert.True(t, verr.Has("denno", "required"))
	assert.True(t, verr.Has("sDenno", "required"))

	kiri, err := KiriForm{Denno: "P0001", SDenno: "P0001-01"}.Bind()
	require.NoError(t, err)
	assert.Equal(t, "P0001-01", kiri.SDenno)

	_, err = HaiinfoForm{Denno: "D0001", DenType: "1"}.Bind()
	assert.True(t, validationError(t, err).Has("orderDate", "required"))

	info, err := HaiinfoForm{Denno: "D0001", DenType: "1", OrderDate: At(time.Now())}.Bind()
	require.NoError(t, err)
	assert.NotNil(t, info.OrderDate)
}

func TestDecode(t *testing.T) {
	var form FieldTestForm
	err := Decode(strings.NewReader(`{"int1": 5, "char1": "AB", "date1": "2024年1月15日", "date2": "2024/01/16 09:30"}`), &form)
	require.NoError(t, err)

	rec, err := form.Bind()
	require.NoError(t, err)
	assert.Equal(t, 5, rec.Int1)
	assert.Equal(t, 2024, rec.Date1.Year())
	assert.Equal(t, time.January, rec.Date1.Month())
	assert.Equal(t, 15, rec.Date1.Day())
	require.NotNil(t, rec.Date2)
	assert.Equal(t, 9, rec.Date2.Hour())

	var nullable DateTestForm
	require.NoError(t, Decode(strings.NewReader(`{"date1": "2024-01-15T10:00:00Z", "date4": null}`), &nullable))
	assert.Nil(t, nullable.Date4)

	err = Decode(strings.NewReader(`{"int1": 5, "unknown": true}`), &form)
	assert.Error(t, err)

	err = Decode(strings.NewReader(`{"date1": "not a date"}`), &nullable)
	assert.Error(t, err)
}
