package schema

import "testing"

func TestSlotsOfOrderIsStable(t *testing.T) {
	want := []string{"exam_time_left", "study_hours_per_day", "timetable_breaker"}
	got := SlotsOf("time_pressure")
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSlotsOfUnknownDomain(t *testing.T) {
	if got := SlotsOf("astrology"); got != nil {
		t.Errorf("expected nil for unknown domain, got %v", got)
	}
}

func TestIsKnownSlot(t *testing.T) {
	tests := []struct {
		domain string
		slot   string
		want   bool
	}{
		{"distractions", "phone_app", true},
		{"distractions", "general_distraction", true},
		{"academic_confidence", "exam_feeling", true},
		{"distractions", "exam_feeling", false},
		{"time_pressure", "general_distraction", false},
		{"motivation", "motivation_reason", true},
		{"motivation", "unknown", false},
		{"nope", "phone_app", false},
	}
	for _, tt := range tests {
		if got := IsKnownSlot(tt.domain, tt.slot); got != tt.want {
			t.Errorf("IsKnownSlot(%q, %q) = %v, want %v", tt.domain, tt.slot, got, tt.want)
		}
	}
}

func TestGenericDomainQuestion(t *testing.T) {
	slot, question, ok := GenericDomainQuestion("distractions")
	if !ok {
		t.Fatal("expected a generic question for distractions")
	}
	if slot != "general_distraction" {
		t.Errorf("unexpected generic slot %q", slot)
	}
	if question == "" {
		t.Error("expected a non-empty canned question")
	}

	if _, _, ok := GenericDomainQuestion("family_pressure"); ok {
		t.Error("family_pressure should not have a generic question")
	}
}

func TestSlotExists(t *testing.T) {
	if !SlotExists("comparison_gap") {
		t.Error("comparison_gap should exist")
	}
	if SlotExists("general_distraction") {
		t.Error("generic slots are not schema slots")
	}
	if SlotExists("made_up") {
		t.Error("made_up should not exist")
	}
}

func TestPriorityOrderCoversSchema(t *testing.T) {
	seen := map[string]bool{}
	for _, domain := range PriorityOrder {
		if seen[domain] {
			t.Errorf("duplicate domain %q in priority order", domain)
		}
		seen[domain] = true
		if len(SlotSchema[domain]) == 0 {
			t.Errorf("priority domain %q missing from schema", domain)
		}
	}
	for domain := range SlotSchema {
		if !seen[domain] {
			t.Errorf("schema domain %q missing from priority order", domain)
		}
	}
}
