package model

import (
	"strconv"
	"strings"
)

// CacheKey identifies a cached exam document. Exam and stream are
// normalized to upper case; an absent stream normalizes to the empty
// string so that "no stream" and "" compare equal.
type CacheKey struct {
	Exam   string
	Stream string
	Year   int
}

// NewCacheKey builds a normalized cache key from request parameters.
func NewCacheKey(exam, stream string, year int) CacheKey {
	return CacheKey{
		Exam:   strings.ToUpper(exam),
		Stream: strings.ToUpper(stream),
		Year:   year,
	}
}

// String renders the key as EXAM[_STREAM][_YEAR], used for logging.
func (k CacheKey) String() string {
	parts := []string{k.Exam}
	if k.Stream != "" {
		parts = append(parts, k.Stream)
	}
	if k.Year != 0 {
		parts = append(parts, strconv.Itoa(k.Year))
	}
	return strings.Join(parts, "_")
}

// Matches reports whether a stored document satisfies this key. Names
// and streams compare case-insensitively with nil and "" equivalent.
// A requested year must equal the stored year; when no year was
// requested, any stored year matches.
func (k CacheKey) Matches(d ExamDetails) bool {
	if !strings.EqualFold(d.Name, k.Exam) {
		return false
	}
	storedStream := ""
	if d.Stream != nil {
		storedStream = strings.ToUpper(*d.Stream)
	}
	if storedStream != k.Stream {
		return false
	}
	if k.Year != 0 {
		return d.Year != nil && *d.Year == k.Year
	}
	return true
}
