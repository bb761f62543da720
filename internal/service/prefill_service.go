package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"stressdost/internal/config"
	"stressdost/internal/model"
	"stressdost/internal/schema"
)

const systemPromptPrefill = `You extract interview slots from a student's opening message.

Return STRICT JSON only:
{"active_domains":["..."],"prefill":{"domain":{"slot":"value"}},"negated_slots":["..."]}

Rules:
- active_domains and prefill keys must be domains from the provided schema.
- prefill values must be short phrases actually stated by the student.
- negated_slots lists slot names the student explicitly says do not apply.
- Never invent values. Omit anything not clearly stated.`

// PrefillService extracts slot values already present in the opening text so
// the interview never re-asks what the student volunteered.
type PrefillService struct {
	llm *LLMClient
	cfg *config.AIConfig
}

func NewPrefillService(llm *LLMClient, cfg *config.AIConfig) *PrefillService {
	return &PrefillService{llm: llm, cfg: cfg}
}

// Prefill returns validated prefill data for the text. Any failure yields an
// empty result; prefill is an optimization, never a requirement.
func (s *PrefillService) Prefill(ctx context.Context, text string) model.PrefillResult {
	empty := model.PrefillResult{Prefill: map[string]map[string]string{}}
	text = strings.TrimSpace(text)
	if text == "" || !s.llm.Enabled() {
		return empty
	}

	userPayload, _ := json.Marshal(map[string]interface{}{
		"schema":    schema.SlotSchema,
		"user_text": truncateRunes(text, 2000),
	})

	raw, err := s.llm.GenerateJSON(ctx, s.cfg.Models.Prefill, systemPromptPrefill, string(userPayload))
	if err != nil {
		log.Printf("prefill failed: %v", err)
		return empty
	}

	var parsed model.PrefillResult
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("prefill bad json: %v", err)
		return empty
	}

	return sanitizePrefill(parsed)
}

// sanitizePrefill drops everything the schema does not recognize and trims
// values to short phrases.
func sanitizePrefill(parsed model.PrefillResult) model.PrefillResult {
	out := model.PrefillResult{Prefill: map[string]map[string]string{}}

	for _, domain := range parsed.ActiveDomains {
		domain = strings.TrimSpace(domain)
		if len(schema.SlotsOf(domain)) == 0 {
			continue
		}
		duplicate := false
		for _, existing := range out.ActiveDomains {
			if existing == domain {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out.ActiveDomains = append(out.ActiveDomains, domain)
		}
	}

	for domain, values := range parsed.Prefill {
		if len(schema.SlotsOf(domain)) == 0 {
			continue
		}
		for slot, value := range values {
			if !schema.IsKnownSlot(domain, slot) {
				continue
			}
			value = strings.Join(strings.Fields(value), " ")
			if value == "" {
				continue
			}
			value = truncateRunes(value, 80)
			if out.Prefill[domain] == nil {
				out.Prefill[domain] = map[string]string{}
			}
			out.Prefill[domain][slot] = value
		}
	}

	for _, slot := range parsed.NegatedSlots {
		slot = strings.TrimSpace(slot)
		if slot == "" || !schema.SlotExists(slot) {
			continue
		}
		out.NegatedSlots = append(out.NegatedSlots, slot)
	}

	return out
}
