package slots

import "testing"

func TestSetUnknownSlotIsNoOp(t *testing.T) {
	f := NewFilled()
	f.Set("distractions", "favorite_color", "blue")
	if len(f.Domains) != 0 {
		t.Errorf("unknown slot should not be stored, got %v", f.Domains)
	}

	f.Set("astrology", "phone_app", "instagram")
	if len(f.Domains) != 0 {
		t.Errorf("unknown domain should not be stored, got %v", f.Domains)
	}
}

func TestSetReplacesDomainMap(t *testing.T) {
	f := NewFilled()
	f.Set("distractions", "phone_app", "instagram")
	before := f.Domains["distractions"]

	f.Set("distractions", "reel_type", "cricket")

	if v, _ := f.Get("distractions", "phone_app"); v != "instagram" {
		t.Errorf("earlier value lost: %q", v)
	}
	if v, _ := f.Get("distractions", "reel_type"); v != "cricket" {
		t.Errorf("new value missing: %q", v)
	}
	// The old sub-map must be left untouched so change detection on a
	// previously read reference still works.
	if len(before) != 1 {
		t.Errorf("old sub-map mutated, len=%d", len(before))
	}
}

func TestSetGenericSlot(t *testing.T) {
	f := NewFilled()
	f.Set("distractions", "general_distraction", "scrolling all day")
	if v, ok := f.Get("distractions", "general_distraction"); !ok || v != "scrolling all day" {
		t.Errorf("generic slot not stored: %q %v", v, ok)
	}
}

func TestNegateDedupes(t *testing.T) {
	f := NewFilled()
	f.Negate([]string{"friend_name", " ", "friend_name", "comparison_gap"})
	if len(f.Negated) != 2 {
		t.Fatalf("expected 2 negated slots, got %v", f.Negated)
	}
	if !f.IsNegated("friend_name") || !f.IsNegated("comparison_gap") {
		t.Errorf("negation lookup failed: %v", f.Negated)
	}
	if f.IsNegated("phone_app") {
		t.Error("phone_app should not be negated")
	}
}

func TestMissingFollowsSchemaOrder(t *testing.T) {
	f := NewFilled()
	f.Set("social_comparison", "comparison_person", "Raj")

	missing := f.Missing([]string{"social_comparison", "family_pressure"})
	want := []Ref{
		{Domain: "social_comparison", Slot: "comparison_gap"},
		{Domain: "family_pressure", Slot: "family_member"},
		{Domain: "family_pressure", Slot: "expectation_type"},
	}
	if len(missing) != len(want) {
		t.Fatalf("expected %d missing, got %v", len(want), missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("missing[%d] = %v, want %v", i, missing[i], want[i])
		}
	}
}

func TestInferEmotionSignals(t *testing.T) {
	f := NewFilled()
	f.Set("academic_confidence", "concept_confidence", "very low")
	f.Set("academic_confidence", "exam_feeling", "pressure from everywhere")
	f.Set("motivation", "demotivation_reason", "feel like i can't do it")
	f.Set("distractions", "general_distraction", "on instagram all day")

	got := f.InferEmotionSignals()
	want := []string{"self_doubt", "pressure", "panic", "distraction"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("signal %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInferEmotionSignalsEmptyProfile(t *testing.T) {
	if got := NewFilled().InferEmotionSignals(); len(got) != 0 {
		t.Errorf("expected no signals, got %v", got)
	}
}
