package combo

import (
	"strings"

	"stressdost/internal/slots"
)

// Assignment is one parsed slot value from a combo answer.
type Assignment struct {
	Ref   slots.Ref
	Value string
}

// Result is the structured outcome of parsing a combo answer. Emotion is
// empty when the combo has no emotion probe.
type Result struct {
	Assignments []Assignment
	Emotion     string
}

// emotionVocabulary is checked first, in fixed order, before the looser cues.
var emotionVocabulary = []string{"pressure", "panic", "self_doubt", "motivation"}

// emotionCues map free-form wording onto the fixed vocabulary. Priority order
// matters: earlier cues win.
var emotionCues = []struct {
	substrings []string
	emotion    string
}{
	{[]string{"anx", "panic"}, "panic"},
	{[]string{"doubt", "worth"}, "self_doubt"},
	{[]string{"pressure", "expect"}, "pressure"},
	{[]string{"motivat", "hope"}, "motivation"},
}

// NormalizeGap folds free-form gap wording into the closed small/big
// vocabulary, truncating anything unrecognized.
func NormalizeGap(value string) string {
	lowered := strings.ToLower(value)
	if strings.Contains(lowered, "big") {
		return "big gap"
	}
	if strings.Contains(lowered, "small") {
		return "small gap"
	}
	trimmed := strings.TrimSpace(lowered)
	if len(trimmed) > 30 {
		trimmed = trimmed[:30]
	}
	return trimmed
}

// NormalizeEmotion maps free-form emotion wording onto the fixed vocabulary,
// returning ok=false when nothing matches.
func NormalizeEmotion(value string) (string, bool) {
	lowered := strings.ToLower(value)
	for _, emotion := range emotionVocabulary {
		if strings.Contains(lowered, emotion) {
			return emotion, true
		}
	}
	for _, cue := range emotionCues {
		for _, sub := range cue.substrings {
			if strings.Contains(lowered, sub) {
				return cue.emotion, true
			}
		}
	}
	return "", false
}

func answerLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Parse runs the combo's deterministic line parser. It returns ok=false when
// the answer does not meet the minimum structure, which the caller turns into
// a reformat request rather than an error.
func Parse(comboID, text string) (Result, bool) {
	switch comboID {
	case "friend_compare_emotion":
		return parseFriendCompareEmotion(text)
	case "distraction_time_combo":
		return parseDistractionTime(text)
	}
	return Result{}, false
}

func parseFriendCompareEmotion(text string) (Result, bool) {
	lines := answerLines(text)
	if len(lines) < 3 {
		return Result{}, false
	}

	friend := truncate(lines[0], 50)

	if !strings.Contains(lines[1], "|") {
		return Result{}, false
	}
	parts := strings.SplitN(lines[1], "|", 2)
	person := truncate(strings.TrimSpace(parts[0]), 50)
	gap := NormalizeGap(strings.TrimSpace(parts[1]))

	emotion, ok := NormalizeEmotion(lines[2])
	if !ok {
		return Result{}, false
	}

	return Result{
		Assignments: []Assignment{
			{Ref: slots.Ref{Domain: "distractions", Slot: "friend_name"}, Value: friend},
			{Ref: slots.Ref{Domain: "social_comparison", Slot: "comparison_person"}, Value: person},
			{Ref: slots.Ref{Domain: "social_comparison", Slot: "comparison_gap"}, Value: gap},
		},
		Emotion: emotion,
	}, true
}

func parseDistractionTime(text string) (Result, bool) {
	lines := answerLines(text)
	if len(lines) < 3 {
		return Result{}, false
	}

	return Result{
		Assignments: []Assignment{
			{Ref: slots.Ref{Domain: "distractions", Slot: "gaming_app"}, Value: truncate(lines[0], 80)},
			{Ref: slots.Ref{Domain: "distractions", Slot: "gaming_time"}, Value: truncate(lines[1], 80)},
			{Ref: slots.Ref{Domain: "time_pressure", Slot: "timetable_breaker"}, Value: truncate(lines[2], 80)},
		},
	}, true
}
