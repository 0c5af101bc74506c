package parser

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d -]{8,}\d`)
)

// BasicInfo is the deterministic, regex-derived field set. It is computed
// once per request and doubles as the fallback result when the generation
// branch fails for any reason.
type BasicInfo struct {
	Name    string
	Email   string // empty = not found
	Phone   string // empty = not found
	RawText string
}

// ExtractBasicInfo derives BasicInfo from extracted resume text. Pure
// function: no I/O, never fails. The name is whatever sits on the first
// line, or "Unknown" for empty input.
func ExtractBasicInfo(text string) BasicInfo {
	info := BasicInfo{
		Name:    "Unknown",
		Email:   emailRe.FindString(text),
		Phone:   phoneRe.FindString(text),
		RawText: text,
	}

	if text != "" {
		firstLine, _, _ := strings.Cut(text, "\n")
		info.Name = strings.TrimSpace(firstLine)
	}

	return info
}

// Fields renders BasicInfo as the canonical field map. All four keys are
// always present; email/phone that were not found come out as explicit
// nulls, matching what the merge step copies into a partial structured map.
func (b BasicInfo) Fields() map[string]any {
	m := map[string]any{
		"name":     b.Name,
		"email":    nil,
		"phone":    nil,
		"raw_text": b.RawText,
	}
	if b.Email != "" {
		m["email"] = b.Email
	}
	if b.Phone != "" {
		m["phone"] = b.Phone
	}
	return m
}
