package service

import "testing"

func TestKeywordCausesInstagramAndDeadline(t *testing.T) {
	causes := keywordCauses("I waste time on Instagram and my exam is in 10 days")
	if !causes["digital_distraction"] {
		t.Error("expected digital_distraction true")
	}
	if !causes["time_pressure"] {
		t.Error("expected time_pressure true")
	}
	if causes["family_pressure"] {
		t.Error("family_pressure should stay false")
	}
	if causes["emotional_overwhelm"] {
		t.Error("emotional_overwhelm should stay false")
	}
}

func TestKeywordCausesDenialOverride(t *testing.T) {
	causes := keywordCauses("I am not distracted by my phone, my exam is near")
	if causes["digital_distraction"] {
		t.Error("denial phrase must force digital_distraction false")
	}
	if !causes["time_pressure"] {
		t.Error("time_pressure should survive the denial")
	}
}

func TestDefaultCausesAllFalse(t *testing.T) {
	causes := defaultCauses()
	if len(causes) != len(CauseKeys) {
		t.Fatalf("expected %d keys, got %d", len(CauseKeys), len(causes))
	}
	for key, v := range causes {
		if v {
			t.Errorf("cause %q should default to false", key)
		}
	}
}

func TestKeywordComponents(t *testing.T) {
	components := keywordComponents("I waste time on Instagram and my exam is in 10 days")
	want := map[string]bool{"time_pressure": true, "distractions": true}
	for _, c := range components {
		if !want[c] {
			t.Errorf("unexpected component %q", c)
		}
		delete(want, c)
	}
	for c := range want {
		t.Errorf("missing component %q", c)
	}
}

func TestKeywordComponentsDenialFilter(t *testing.T) {
	components := keywordComponents("no phone distraction, but I do waste time and compare with the topper")
	for _, c := range components {
		if c == "distractions" {
			t.Error("denied distractions must be filtered out")
		}
	}
	found := false
	for _, c := range components {
		if c == "social_comparison" {
			found = true
		}
	}
	if !found {
		t.Error("social_comparison should be detected")
	}
}

func TestFilterDomainsByDenials(t *testing.T) {
	in := []string{"distractions", "social_comparison", "time_pressure"}
	out := filterDomainsByDenials(in, "I don't compare myself with anyone")
	want := []string{"distractions", "time_pressure"}
	if len(out) != len(want) {
		t.Fatalf("expected %v, got %v", want, out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %q, want %q", i, out[i], want[i])
		}
	}
}
