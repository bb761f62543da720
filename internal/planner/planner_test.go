package planner

import (
	"testing"

	"stressdost/internal/slots"
)

func allowAll(string, string, string) bool { return true }

func allCauses() map[string]bool {
	return map[string]bool{
		"time_pressure":       true,
		"digital_distraction": true,
		"social_distraction":  true,
		"academic_confidence": true,
		"family_pressure":     true,
	}
}

func TestPickNextFollowsPriorityOrder(t *testing.T) {
	filled := slots.NewFilled()
	active := []string{"distractions", "time_pressure"}
	missing := filled.Missing(active)

	ref, ok := PickNext(active, missing, map[string]int{}, 2, "", filled, allCauses(), allowAll)
	if !ok {
		t.Fatal("expected a pick")
	}
	if ref.Domain != "time_pressure" || ref.Slot != "exam_time_left" {
		t.Errorf("expected time_pressure/exam_time_left first, got %v", ref)
	}
}

func TestPickNextRespectsDomainCap(t *testing.T) {
	filled := slots.NewFilled()
	active := []string{"time_pressure", "distractions"}
	missing := filled.Missing(active)
	counts := map[string]int{"time_pressure": 2}

	ref, ok := PickNext(active, missing, counts, 2, "", filled, allCauses(), allowAll)
	if !ok {
		t.Fatal("expected a pick")
	}
	if ref.Domain != "distractions" {
		t.Errorf("capped domain picked: %v", ref)
	}
}

func TestPickNextSkipsNegatedSlots(t *testing.T) {
	filled := slots.NewFilled()
	filled.Negate([]string{"exam_time_left"})
	active := []string{"time_pressure"}
	missing := filled.Missing(active)

	ref, ok := PickNext(active, missing, map[string]int{}, 2, "", filled, allCauses(), allowAll)
	if !ok {
		t.Fatal("expected a pick")
	}
	if ref.Slot != "study_hours_per_day" {
		t.Errorf("expected the next schema slot, got %v", ref)
	}
}

func TestPickNextSkipsCauseLockedDomains(t *testing.T) {
	filled := slots.NewFilled()
	causes := map[string]bool{"academic_confidence": true}
	active := []string{"time_pressure", "academic_confidence"}
	missing := filled.Missing(active)

	ref, ok := PickNext(active, missing, map[string]int{}, 2, "", filled, causes, allowAll)
	if !ok {
		t.Fatal("expected a pick")
	}
	if ref.Domain != "academic_confidence" {
		t.Errorf("cause-locked domain picked: %v", ref)
	}
}

func TestPickNextConsultsGateOncePerSlot(t *testing.T) {
	filled := slots.NewFilled()
	active := []string{"social_comparison"}
	missing := filled.Missing(active)

	calls := map[string]int{}
	gate := func(_, domain, slot string) bool {
		calls[domain+"."+slot]++
		return false
	}
	causes := map[string]bool{"social_distraction": true}

	_, ok := PickNext(active, missing, map[string]int{}, 2, "", filled, causes, gate)
	if ok {
		t.Fatal("gate rejects everything and social_comparison has no generic slot")
	}
	for key, n := range calls {
		if n != 1 {
			t.Errorf("gate consulted %d times for %s", n, key)
		}
	}
	if len(calls) != 2 {
		t.Errorf("expected 2 gated slots, got %v", calls)
	}
}

func TestPickNextFallsBackToGenericSlot(t *testing.T) {
	filled := slots.NewFilled()
	active := []string{"distractions"}
	missing := filled.Missing(active)
	denyAll := func(string, string, string) bool { return false }
	causes := map[string]bool{"digital_distraction": true}

	ref, ok := PickNext(active, missing, map[string]int{}, 2, "", filled, causes, denyAll)
	if !ok {
		t.Fatal("expected the generic fallback")
	}
	if ref.Domain != "distractions" || ref.Slot != GenericSlot {
		t.Errorf("expected generic pick, got %v", ref)
	}
}

func TestPickNextGenericSkippedWhenAlreadyFilled(t *testing.T) {
	filled := slots.NewFilled()
	filled.Set("distractions", "general_distraction", "reels at night")
	denyAll := func(string, string, string) bool { return false }
	causes := map[string]bool{"digital_distraction": true}
	active := []string{"distractions"}
	missing := filled.Missing(active)

	if _, ok := PickNext(active, missing, map[string]int{}, 2, "", filled, causes, denyAll); ok {
		t.Error("filled generic slot must not be offered again")
	}
}
