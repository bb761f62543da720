// Package slots holds the filled-slot state for a session and the pure
// operations over it: writes, negation, and the missing-slot scan.
package slots

import (
	"strings"

	"stressdost/internal/schema"
)

// Ref identifies one slot within a domain.
type Ref struct {
	Domain string
	Slot   string
}

// Filled is the accumulated slot state for a session. Negated keeps the slot
// names the user marked as not applicable; they stay excluded from selection
// for the rest of the session.
type Filled struct {
	Domains map[string]map[string]string `json:"domains" bson:"domains"`
	Negated []string                     `json:"negated" bson:"negated"`
}

// NewFilled returns an empty slot state.
func NewFilled() *Filled {
	return &Filled{Domains: map[string]map[string]string{}}
}

// Set writes a slot value. Unknown (domain, slot) pairs are ignored: slot
// names originate from the trusted schema, so a miss is a silent no-op rather
// than an error. The domain sub-map is replaced wholesale so change detection
// on the stored document sees a fresh reference.
func (f *Filled) Set(domain, slot, value string) {
	if !schema.IsKnownSlot(domain, slot) {
		return
	}
	if f.Domains == nil {
		f.Domains = map[string]map[string]string{}
	}
	next := make(map[string]string, len(f.Domains[domain])+1)
	for k, v := range f.Domains[domain] {
		next[k] = v
	}
	next[slot] = value
	f.Domains[domain] = next
}

// Get returns the stored value for a slot and whether one exists.
func (f *Filled) Get(domain, slot string) (string, bool) {
	v, ok := f.Domains[domain][slot]
	return v, ok
}

// Negate appends previously-unseen slot names to the negated set. Blank
// names are dropped; repeats are ignored.
func (f *Filled) Negate(names []string) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || f.IsNegated(name) {
			continue
		}
		f.Negated = append(f.Negated, name)
	}
}

// IsNegated reports whether the slot name was marked as not applicable.
func (f *Filled) IsNegated(slot string) bool {
	for _, n := range f.Negated {
		if n == slot {
			return true
		}
	}
	return false
}

// Missing returns, for every active domain in order, the schema slots that
// have no non-empty value yet. Output order is stable for identical input.
func (f *Filled) Missing(activeDomains []string) []Ref {
	var missing []Ref
	for _, domain := range activeDomains {
		for _, slot := range schema.SlotsOf(domain) {
			if f.Domains[domain][slot] == "" {
				missing = append(missing, Ref{Domain: domain, Slot: slot})
			}
		}
	}
	return missing
}

// InferEmotionSignals derives emotion tags from stored slot values using
// fixed keyword-presence rules. Order is deterministic.
func (f *Filled) InferEmotionSignals() []string {
	var signals []string
	add := func(s string) {
		for _, existing := range signals {
			if existing == s {
				return
			}
		}
		signals = append(signals, s)
	}

	ac := f.Domains["academic_confidence"]
	concept := strings.ToLower(ac["concept_confidence"])
	examFeeling := strings.ToLower(ac["exam_feeling"])
	if strings.Contains(concept, "low") {
		add("self_doubt")
	}
	if strings.Contains(examFeeling, "not made") {
		add("self_doubt")
	}
	if strings.Contains(examFeeling, "pressure") {
		add("pressure")
	}

	demotivation := strings.ToLower(f.Domains["motivation"]["demotivation_reason"])
	if strings.Contains(demotivation, "not made") || strings.Contains(demotivation, "can't do") {
		add("panic")
	}

	general := strings.ToLower(f.Domains["distractions"]["general_distraction"])
	if strings.Contains(general, "all day") || strings.Contains(general, "whole day") {
		add("distraction")
	}

	return signals
}
