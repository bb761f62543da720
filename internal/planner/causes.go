package planner

import "stressdost/internal/schema"

// DomainCauseMap links each domain to the detected cause keys that unlock it.
// A domain with no entry can never be activated by causes alone.
var DomainCauseMap = map[string][]string{
	"family_pressure":     {"family_pressure"},
	"distractions":        {"digital_distraction"},
	"social_comparison":   {"social_distraction"},
	"academic_confidence": {"academic_confidence"},
	"time_pressure":       {"time_pressure"},
}

// ActivateDomainsFromCauses returns the domains whose cause gate passes, in
// priority order.
func ActivateDomainsFromCauses(causes map[string]bool) []string {
	var active []string
	for _, domain := range schema.PriorityOrder {
		if DomainAllowedByCause(domain, causes) {
			active = append(active, domain)
		}
	}
	return active
}

// DomainAllowedByCause reports whether at least one of the domain's mapped
// cause keys was detected.
func DomainAllowedByCause(domain string, causes map[string]bool) bool {
	keys := DomainCauseMap[domain]
	if len(keys) == 0 {
		return false
	}
	for _, key := range keys {
		if causes[key] {
			return true
		}
	}
	return false
}
