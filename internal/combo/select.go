package combo

import (
	"strings"

	"stressdost/internal/relevance"
	"stressdost/internal/slots"
)

// earlyWindow bounds combo offers to the opening turns of an interview.
const earlyWindow = 2

// Select returns the first catalog combo eligible for this session, or
// ok=false. A candidate is eligible when it has not been used before, the
// raw text makes both the combo and each participating domain relevant, and
// at least one of its slots is still missing. First match wins; there is no
// scoring.
func Select(rawText string, asked int, used []string, filled *slots.Filled) (string, bool) {
	if asked > earlyWindow {
		return "", false
	}
	usedSet := map[string]bool{}
	for _, id := range used {
		usedSet[id] = true
	}

	for _, spec := range Catalog {
		if usedSet[spec.ID] {
			continue
		}
		if !relevance.ComboRelevant(spec.ID, rawText) {
			continue
		}
		relevant := true
		for _, domain := range spec.Domains {
			if !relevance.DomainRelevant(domain, rawText) {
				relevant = false
				break
			}
		}
		if !relevant {
			continue
		}
		if len(missingSlots(spec, filled)) == 0 {
			continue
		}
		return spec.ID, true
	}
	return "", false
}

func missingSlots(spec Spec, filled *slots.Filled) []slots.Ref {
	var missing []slots.Ref
	for _, ref := range spec.Slots {
		if v, _ := filled.Get(ref.Domain, ref.Slot); strings.TrimSpace(v) == "" {
			missing = append(missing, ref)
		}
	}
	return missing
}
