// Package planner picks the next slot to ask about, balancing the fixed
// domain priority order against per-domain fatigue caps, user negations,
// cause gating, and an external eligibility oracle.
package planner

import (
	"stressdost/internal/schema"
	"stressdost/internal/slots"
)

// GenericSlot marks a pick that should use the domain's reserved generic
// question instead of a schema slot.
const GenericSlot = "__generic__"

// GateFunc is the external yes/no oracle on whether a slot should currently
// be asked. It is consulted at most once per (domain, slot) pair within a
// single PickNext call.
type GateFunc func(userText, domain, slot string) bool

// PickNext returns the next (domain, slot) to ask about, or ok=false when
// every tier is exhausted and the interview should end.
//
// Tier 1 walks domains in priority order and their missing slots in schema
// order. Tier 2 relaxes the priority ordering and rescans the missing list
// as given. Tier 3 offers each active domain's generic slot. All tiers are
// ordered early-return scans; the ordering is the contract.
func PickNext(
	activeDomains []string,
	missing []slots.Ref,
	domainCounts map[string]int,
	maxPerDomain int,
	userText string,
	filled *slots.Filled,
	causes map[string]bool,
	gate GateFunc,
) (slots.Ref, bool) {
	byDomain := map[string][]slots.Ref{}
	for _, ref := range missing {
		byDomain[ref.Domain] = append(byDomain[ref.Domain], ref)
	}

	// Oracle results are memoized for this call only; the cache must not
	// outlive a single invocation.
	gateCache := map[slots.Ref]bool{}
	eligible := func(ref slots.Ref) bool {
		if filled.IsNegated(ref.Slot) {
			return false
		}
		if !DomainAllowedByCause(ref.Domain, causes) {
			return false
		}
		verdict, seen := gateCache[ref]
		if !seen {
			verdict = gate(userText, ref.Domain, ref.Slot)
			gateCache[ref] = verdict
		}
		return verdict
	}

	active := map[string]bool{}
	for _, domain := range activeDomains {
		active[domain] = true
	}

	for _, domain := range schema.PriorityOrder {
		if !active[domain] {
			continue
		}
		if domainCounts[domain] >= maxPerDomain {
			continue
		}
		for _, ref := range byDomain[domain] {
			if eligible(ref) {
				return ref, true
			}
		}
	}

	for _, ref := range missing {
		if domainCounts[ref.Domain] >= maxPerDomain {
			continue
		}
		if eligible(ref) {
			return ref, true
		}
	}

	for _, domain := range activeDomains {
		if domainCounts[domain] >= maxPerDomain {
			continue
		}
		if !DomainAllowedByCause(domain, causes) {
			continue
		}
		genericSlot, ok := schema.GenericSlotName(domain)
		if !ok {
			continue
		}
		if v, _ := filled.Get(domain, genericSlot); v != "" {
			continue
		}
		return slots.Ref{Domain: domain, Slot: GenericSlot}, true
	}

	return slots.Ref{}, false
}
