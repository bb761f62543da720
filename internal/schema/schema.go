package schema

// SlotSchema maps each stress domain to its ordered slot list. Slice order is
// the declaration order used by the missing-slot scan.
var SlotSchema = map[string][]string{
	"distractions": {
		"phone_app",
		"app_activity",
		"reel_type",
		"friend_name",
		"gaming_app",
		"gaming_time",
	},
	"academic_confidence": {
		"weak_subject",
		"favorite_subject",
		"concept_confidence",
		"last_test_experience",
	},
	"time_pressure": {
		"exam_time_left",
		"study_hours_per_day",
		"timetable_breaker",
	},
	"social_comparison": {
		"comparison_person",
		"comparison_gap",
	},
	"family_pressure": {
		"family_member",
		"expectation_type",
	},
	"motivation": {
		"motivation_reason",
		"demotivation_reason",
	},
	"backlog_stress": {
		"backlog_subject",
		"backlog_deadline",
	},
}

// PriorityOrder is the planner's domain tie-break order. It is intentionally
// different from any alphabetical or schema ordering.
var PriorityOrder = []string{
	"time_pressure",
	"academic_confidence",
	"distractions",
	"backlog_stress",
	"family_pressure",
	"social_comparison",
	"motivation",
}

// GenericQuestions holds the one reserved fallback slot and canned question
// per domain. Domains without an entry have no generic fallback.
var GenericQuestions = map[string]GenericQuestion{
	"distractions": {
		Slot:     "general_distraction",
		Question: "What do you usually do on your phone when you feel low or tired?",
	},
	"academic_confidence": {
		Slot:     "exam_feeling",
		Question: "What makes the exam feel especially heavy for you right now?",
	},
}

type GenericQuestion struct {
	Slot     string
	Question string
}

// SlotsOf returns the ordered slot list for a domain.
func SlotsOf(domain string) []string {
	return SlotSchema[domain]
}

// IsKnownSlot reports whether the (domain, slot) pair exists in the schema,
// or is the domain's reserved generic slot.
func IsKnownSlot(domain, slot string) bool {
	for _, s := range SlotSchema[domain] {
		if s == slot {
			return true
		}
	}
	if g, ok := GenericQuestions[domain]; ok && g.Slot == slot {
		return true
	}
	return false
}

// GenericSlotName returns the domain's reserved generic slot name, if any.
func GenericSlotName(domain string) (string, bool) {
	g, ok := GenericQuestions[domain]
	if !ok {
		return "", false
	}
	return g.Slot, true
}

// GenericDomainQuestion returns the domain's generic slot and canned question.
func GenericDomainQuestion(domain string) (slot, question string, ok bool) {
	g, found := GenericQuestions[domain]
	if !found {
		return "", "", false
	}
	return g.Slot, g.Question, true
}

// SlotExists reports whether the slot name appears in any domain's schema.
func SlotExists(slot string) bool {
	for _, slots := range SlotSchema {
		for _, s := range slots {
			if s == slot {
				return true
			}
		}
	}
	return false
}
