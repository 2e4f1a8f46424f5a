package movie

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// RatingAction decides what happens to a row whose rating is unusable.
type RatingAction string

const (
	// RatingDefault keeps the row and stores a rating of 0.0.
	RatingDefault RatingAction = "default"
	// RatingSkip rejects the row with ReasonInvalidRating.
	RatingSkip RatingAction = "skip"
)

// Policy holds the field rules applied to every row.
type Policy struct {
	Name string `yaml:"name"`

	MinYear int `yaml:"min_year"`
	MaxYear int `yaml:"max_year"`

	MaxLanguages      int    `yaml:"max_languages"`
	MaxLanguageLen    int    `yaml:"max_language_len"` // in characters
	LanguageDelimiter string `yaml:"language_delimiter"`
	RequireBrackets   bool   `yaml:"require_brackets"`

	// StrictQuotes rejects quotes inside unquoted fields as a malformed row.
	// Off, such quotes are kept as part of the value.
	StrictQuotes bool `yaml:"strict_quotes"`

	MinRating     float64      `yaml:"min_rating"`
	MaxRating     float64      `yaml:"max_rating"`
	InvalidRating RatingAction `yaml:"invalid_rating"`
}

// Bracketed is the default policy: "[a;b]" languages, invalid ratings become 0.0.
var Bracketed = Policy{
	Name:              "bracketed",
	MinYear:           1900,
	MaxYear:           2021,
	MaxLanguages:      5,
	MaxLanguageLen:    20,
	LanguageDelimiter: ";",
	RequireBrackets:   true,
	MinRating:         1.0,
	MaxRating:         10.0,
	InvalidRating:     RatingDefault,
}

// Plain accepts unbracketed, comma-separated languages (the field must be
// quoted in the CSV) and rejects rows whose rating is unusable.
var Plain = Policy{
	Name:              "plain",
	MinYear:           1900,
	MaxYear:           2021,
	MaxLanguages:      5,
	MaxLanguageLen:    20,
	LanguageDelimiter: ",",
	RequireBrackets:   false,
	MinRating:         1.0,
	MaxRating:         10.0,
	InvalidRating:     RatingSkip,
}

// Validate reports an inconsistent policy.
func (p Policy) Validate() error {
	var errs []string

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is empty")
	}
	if p.MinYear > p.MaxYear {
		errs = append(errs, fmt.Sprintf("min_year %d is after max_year %d", p.MinYear, p.MaxYear))
	}
	if p.MaxLanguages <= 0 {
		errs = append(errs, "max_languages must be positive")
	}
	if p.MaxLanguageLen <= 0 {
		errs = append(errs, "max_language_len must be positive")
	}
	if p.LanguageDelimiter == "" {
		errs = append(errs, "language_delimiter is empty")
	}
	if math.IsNaN(p.MinRating) || math.IsNaN(p.MaxRating) || p.MinRating > p.MaxRating {
		errs = append(errs, fmt.Sprintf("rating range [%g, %g] is invalid", p.MinRating, p.MaxRating))
	}
	switch p.InvalidRating {
	case RatingDefault, RatingSkip:
	default:
		errs = append(errs, fmt.Sprintf("invalid_rating must be %q or %q, got %q", RatingDefault, RatingSkip, p.InvalidRating))
	}

	if len(errs) > 0 {
		return fmt.Errorf("policy %q: %s", p.Name, strings.Join(errs, "; "))
	}
	return nil
}

// ValidYear reports whether year lies in the policy's accepted range.
func (p Policy) ValidYear(year int) bool {
	return year >= p.MinYear && year <= p.MaxYear
}

// ValidateRow turns one row into a Record, or explains why it was rejected.
// Missing trailing fields are treated as empty.
func (p Policy) ValidateRow(fields []string, line int) (Record, *SkipNotice) {
	title := field(fields, 0)
	yearStr := field(fields, 1)
	langStr := field(fields, 2)
	ratingStr := field(fields, 3)

	skip := func(reason SkipReason, value string) (Record, *SkipNotice) {
		return Record{}, &SkipNotice{Line: line, Reason: reason, Value: value}
	}

	if title == "" || yearStr == "" {
		return skip(ReasonMissingField, "")
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || !p.ValidYear(year) {
		return skip(ReasonInvalidYear, yearStr)
	}

	inner, ok := p.unwrapLanguages(langStr)
	if !ok {
		return skip(ReasonLanguageFormat, langStr)
	}

	langs := splitLanguages(inner, p.LanguageDelimiter)
	if len(langs) > p.MaxLanguages {
		return skip(ReasonTooManyLangs, langStr)
	}
	for _, l := range langs {
		if utf8.RuneCountInString(l) > p.MaxLanguageLen {
			return skip(ReasonLanguageLength, l)
		}
	}

	rating, ok := p.parseRating(ratingStr)
	if !ok {
		if p.InvalidRating == RatingSkip {
			return skip(ReasonInvalidRating, ratingStr)
		}
		rating = 0
	}

	return Record{
		Title:     title,
		Year:      year,
		Languages: langs,
		Rating:    rating,
		Line:      line,
	}, nil
}

// unwrapLanguages strips the enclosing brackets. With RequireBrackets the pair
// is mandatory; otherwise whichever bracket is present is dropped.
func (p Policy) unwrapLanguages(s string) (string, bool) {
	hasOpen := strings.HasPrefix(s, "[")
	hasClose := len(s) > 1 && strings.HasSuffix(s, "]")

	if p.RequireBrackets {
		if !hasOpen || !hasClose {
			return "", false
		}
		return s[1 : len(s)-1], true
	}

	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return s, true
}

func (p Policy) parseRating(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	if isHexFloat(s) {
		return 0, false
	}
	r, err := strconv.ParseFloat(s, 64)
	// NaN fails both comparisons.
	if err != nil || !(r >= p.MinRating && r <= p.MaxRating) {
		return 0, false
	}
	return r, true
}

// isHexFloat reports a "0x" mantissa, which ParseFloat would accept.
func isHexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func splitLanguages(s, delim string) []string {
	parts := strings.Split(s, delim)
	langs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			langs = append(langs, part)
		}
	}
	return langs
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}
