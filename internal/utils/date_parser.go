package utils

import (
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatRFC3339       DateFormat = time.RFC3339Nano
	FormatISODateTime   DateFormat = "2006-01-02T15:04:05"
	FormatDashDateTime  DateFormat = "2006-01-02 15:04:05"
	FormatDashMinute    DateFormat = "2006-01-02 15:04"
	FormatDashDate      DateFormat = "2006-01-02"
	FormatSlashDateTime DateFormat = "2006/01/02 15:04:05"
	FormatSlashMinute   DateFormat = "2006/01/02 15:04"
	FormatSlashDate     DateFormat = "2006/01/02"
	FormatKanjiDate     DateFormat = "2006年1月2日"
	FormatKanjiDateTime DateFormat = "2006年1月2日 15時04分"
	FormatCompactDate   DateFormat = "20060102"
	FormatUnixTime      DateFormat = "unix"
)

// DateParser accepts the date spellings operators actually type into slip
// forms. Inputs without a zone are read in the parser's location.
type DateParser struct {
	formats  []DateFormat
	location *time.Location
}

type ParseResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	OriginalValue  string
}

func NewDateParser(loc *time.Location) *DateParser {
	if loc == nil {
		loc = time.Local
	}
	return &DateParser{
		formats: []DateFormat{
			FormatRFC3339,
			FormatISODateTime,
			FormatDashDateTime,
			FormatDashMinute,
			FormatDashDate,
			FormatSlashDateTime,
			FormatSlashMinute,
			FormatSlashDate,
			FormatKanjiDateTime,
			FormatKanjiDate,
			FormatCompactDate,
		},
		location: loc,
	}
}

func (p *DateParser) Parse(input string) ParseResult {
	result := ParseResult{OriginalValue: input}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	// eight digits is a compact date, not an epoch
	if len(input) != 8 {
		if unixTime, err := strconv.ParseInt(input, 10, 64); err == nil {
			if unixTime > 0 && unixTime < 4102444800 {
				result.IsValid = true
				result.DetectedFormat = FormatUnixTime
				result.ParsedTime = time.Unix(unixTime, 0).In(p.location)
				return result
			}
			return result
		}
	}

	for _, format := range p.formats {
		var (
			parsed time.Time
			err    error
		)
		if format == FormatRFC3339 {
			parsed, err = time.Parse(string(format), input)
		} else {
			parsed, err = time.ParseInLocation(string(format), input, p.location)
		}
		if err == nil {
			result.IsValid = true
			result.DetectedFormat = format
			result.ParsedTime = parsed
			return result
		}
	}

	return result
}

func (p *DateParser) AddCustomFormat(format DateFormat) {
	p.formats = append(p.formats, format)
}

func (p *DateParser) SupportedFormats() []DateFormat {
	out := make([]DateFormat, len(p.formats))
	copy(out, p.formats)
	return out
}
