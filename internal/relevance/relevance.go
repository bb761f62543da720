// Package relevance implements negation-aware keyword relevance checks over
// raw student text. A domain is relevant when one of its keywords appears as
// a whole word without a negator in the nearby left context, unless an
// explicit denial phrase overrides everything.
package relevance

import (
	"regexp"
	"strings"
	"sync"
)

// negationWindow is the number of words scanned to the left of a keyword
// match for a negator. The scan is a fixed-size word window over a bounded
// character slice; it does not understand punctuation or clause boundaries,
// which is a known approximation kept for reproducibility.
const negationWindow = 5

var negators = []string{
	"not",
	"no",
	"never",
	"dont",
	"don't",
	"do not",
	"isnt",
	"isn't",
	"am not",
	"aren't",
	"without",
}

var domainDenialPatterns = map[string][]*regexp.Regexp{
	"distractions": {
		regexp.MustCompile(`\bnot distracted by (my )?(phone|mobile|instagram|reels|games|friends?)\b`),
		regexp.MustCompile(`\bno (phone|mobile|friends?) distraction\b`),
		regexp.MustCompile(`\b(phone|mobile) (does not|doesn't) distract\b`),
		regexp.MustCompile(`\bi am not distracted by (phone|mobile|friends?)\b`),
	},
	"social_comparison": {
		regexp.MustCompile(`\b(i )?(dont|don't|do not) compare\b`),
		regexp.MustCompile(`\bno comparison\b`),
		regexp.MustCompile(`\bnot comparing\b`),
	},
}

// DomainKeywords lists the whole-word cues that make a domain relevant.
var DomainKeywords = map[string][]string{
	"distractions": {
		"phone",
		"instagram",
		"youtube",
		"reels",
		"game",
		"gaming",
		"pubg",
		"bgmi",
		"free fire",
		"call of duty",
		"cod",
	},
	"time_pressure": {
		"time",
		"timetable",
		"schedule",
		"overload",
		"syllabus",
		"backlog",
		"chapters",
		"many subjects",
		"handle all",
	},
	"academic_confidence": {
		"hard",
		"difficult",
		"weak",
		"cannot understand",
		"low marks",
		"scores",
		"math",
		"physics",
		"chemistry",
		"bio",
	},
	"social_comparison": {
		"compare",
		"topper",
		"better than me",
		"others",
		"rank",
		"friend scored",
		"competition",
	},
	"family_pressure": {"family", "parents", "dad", "mom", "pressure", "scold"},
	"motivation":      {"motivation", "dream", "goal", "want to", "demotivated", "lost"},
	"backlog_stress":  {"backlog", "pending", "left", "incomplete", "syllabus left"},
}

// ComboKeywords lists the cues that make a combined prompt relevant.
var ComboKeywords = map[string][]string{
	"friend_compare_emotion": {"friend", "compare", "comparison", "distract"},
	"distraction_time_combo": {"gaming", "game", "time pressure", "timetable"},
}

var spaces = regexp.MustCompile(`\s+`)

func normalize(text string) string {
	return spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

// HasDenial reports whether the text contains an explicit denial phrase for
// the domain.
func HasDenial(domain, text string) bool {
	normalized := normalize(text)
	for _, pattern := range domainDenialPatterns[domain] {
		if pattern.MatchString(normalized) {
			return true
		}
	}
	return false
}

var (
	keywordMu       sync.Mutex
	keywordPatterns = map[string]*regexp.Regexp{}
)

func keywordPattern(keyword string) *regexp.Regexp {
	keywordMu.Lock()
	defer keywordMu.Unlock()
	if p, ok := keywordPatterns[keyword]; ok {
		return p
	}
	p := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(keyword)) + `\b`)
	keywordPatterns[keyword] = p
	return p
}

// keywordPositive reports whether the keyword occurs as a whole word without
// a negator inside the left-context window.
func keywordPositive(text, keyword string) bool {
	normalized := normalize(text)
	for _, loc := range keywordPattern(keyword).FindAllStringIndex(normalized, -1) {
		start := loc[0]
		left := normalized[max(0, start-80):start]
		words := strings.Fields(left)
		if len(words) > negationWindow {
			words = words[len(words)-negationWindow:]
		}
		near := strings.Join(words, " ")
		negated := false
		for _, neg := range negators {
			if strings.Contains(near, neg) {
				negated = true
				break
			}
		}
		if negated {
			continue
		}
		return true
	}
	return false
}

func anyPositiveKeyword(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if keywordPositive(text, keyword) {
			return true
		}
	}
	return false
}

// DomainRelevant reports whether the text makes a domain worth probing.
// A denial phrase wins over any keyword hit.
func DomainRelevant(domain, text string) bool {
	if HasDenial(domain, text) {
		return false
	}
	return anyPositiveKeyword(text, DomainKeywords[domain])
}

// ComboRelevant reports whether the text justifies a combined prompt. The
// friend/compare combo is suppressed by a distractions denial even when its
// own keywords match.
func ComboRelevant(comboKey, text string) bool {
	if comboKey == "friend_compare_emotion" && HasDenial("distractions", text) {
		return false
	}
	return anyPositiveKeyword(text, ComboKeywords[comboKey])
}
