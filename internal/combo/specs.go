// Package combo holds the fixed catalog of multi-slot combined prompts, the
// selection and composition rules for offering one, and the deterministic
// parsers for their structured answer format.
package combo

import "stressdost/internal/slots"

// Spec describes one hand-authored combined prompt.
type Spec struct {
	ID           string
	Domains      []string
	Slots        []slots.Ref
	EmotionProbe bool
	AnswerFormat string
	Hint         string
}

// Catalog is the ordered candidate list. Selection is first-match over this
// order; do not reorder.
var Catalog = []Spec{
	{
		ID:      "friend_compare_emotion",
		Domains: []string{"distractions", "social_comparison"},
		Slots: []slots.Ref{
			{Domain: "distractions", Slot: "friend_name"},
			{Domain: "social_comparison", Slot: "comparison_person"},
			{Domain: "social_comparison", Slot: "comparison_gap"},
		},
		EmotionProbe: true,
		AnswerFormat: "3 lines",
		Hint: "Line1 friend name\n" +
			"Line2 comparison person | gap(small/big)\n" +
			"Line3 emotion: pressure/panic/self_doubt/motivation",
	},
	{
		ID:      "distraction_time_combo",
		Domains: []string{"distractions", "time_pressure"},
		Slots: []slots.Ref{
			{Domain: "distractions", Slot: "gaming_app"},
			{Domain: "distractions", Slot: "gaming_time"},
			{Domain: "time_pressure", Slot: "timetable_breaker"},
		},
		EmotionProbe: false,
		AnswerFormat: "3 lines",
		Hint: "Line1 games you play most (e.g., COD / PUBG / Free Fire)\n" +
			"Line2 gaming time per day (e.g., 2-3 hours)\n" +
			"Line3 biggest timetable breaker (phone/games/friends/laziness)",
	},
}

// ForbiddenCombos lists category pairs that may never participate in one
// combined prompt together.
var ForbiddenCombos = [][2]string{
	{"emotion", "comparison"},
	{"comparison", "distraction"},
	{"emotion", "distraction"},
}

// Get returns the spec for an id.
func Get(id string) (Spec, bool) {
	for _, spec := range Catalog {
		if spec.ID == id {
			return spec, true
		}
	}
	return Spec{}, false
}

func categories(spec Spec) map[string]bool {
	cats := map[string]bool{}
	for _, ref := range spec.Slots {
		if ref.Domain == "distractions" {
			cats["distraction"] = true
		}
		if ref.Domain == "social_comparison" {
			cats["comparison"] = true
		}
	}
	if spec.EmotionProbe {
		cats["emotion"] = true
	}
	return cats
}

func forbidden(spec Spec) bool {
	cats := categories(spec)
	for _, pair := range ForbiddenCombos {
		if cats[pair[0]] && cats[pair[1]] {
			return true
		}
	}
	return false
}
