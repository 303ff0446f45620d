package common

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Package common provides small, shared helpers used across handlers.

// CleanText trims s and puts it in Unicode NFC form so that names typed with
// combining accents compare equal to precomposed ones.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ParseID parses a positive record id. An empty value is reported as
// (0, true): the caller decides whether an id is required.
func ParseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
