package planner

import "testing"

func TestActivateDomainsFromCauses(t *testing.T) {
	causes := map[string]bool{
		"digital_distraction": true,
		"time_pressure":       true,
		"family_pressure":     false,
	}
	got := ActivateDomainsFromCauses(causes)
	want := []string{"time_pressure", "distractions"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("domain %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDomainAllowedByCause(t *testing.T) {
	causes := map[string]bool{"social_distraction": true}
	if !DomainAllowedByCause("social_comparison", causes) {
		t.Error("social_distraction should unlock social_comparison")
	}
	if DomainAllowedByCause("distractions", causes) {
		t.Error("distractions should stay locked")
	}
	if DomainAllowedByCause("motivation", causes) {
		t.Error("unmapped domains can never be cause-activated")
	}
}
