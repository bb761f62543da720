package service

import (
	"regexp"
	"strings"
)

// Question validation rules. A question that trips any of these is discarded
// and the caller retries or falls back to the canned catalog.

var bannedQuestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwhy\b`),
	regexp.MustCompile(`\btherapy\b`),
	regexp.MustCompile(`\bcounsel(or|ing)\b`),
	regexp.MustCompile(`\bmental health\b`),
	regexp.MustCompile(`\bdiagnos(is|e)\b`),
	regexp.MustCompile(`\btrauma\b`),
	regexp.MustCompile(`\bdepress(ed|ion)\b`),
}

var (
	compoundCommaPattern = regexp.MustCompile(`,\s*(and|also)\s+`)
	compoundVerbPattern  = regexp.MustCompile(`\band\b.*\b(tell|share|explain|describe|mention)\b`)
)

// IsValidQuestion checks a candidate question against the house rules: one
// terminal question mark, at most 24 words, no banned vocabulary, and no
// compound asks.
func IsValidQuestion(question string) bool {
	question = strings.Join(strings.Fields(question), " ")
	if question == "" {
		return false
	}

	if strings.Count(question, "?") != 1 || !strings.HasSuffix(question, "?") {
		return false
	}

	if len(strings.Fields(question)) > 24 {
		return false
	}

	lowered := strings.ToLower(question)
	for _, pattern := range bannedQuestionPatterns {
		if pattern.MatchString(lowered) {
			return false
		}
	}

	if compoundCommaPattern.MatchString(lowered) {
		return false
	}
	if compoundVerbPattern.MatchString(lowered) {
		return false
	}

	if strings.Contains(question, ";") || strings.Contains(question, "/") {
		return false
	}

	return true
}
