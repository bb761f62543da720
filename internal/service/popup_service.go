package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"stressdost/internal/config"
	"stressdost/internal/model"
	"stressdost/internal/slots"
)

const (
	minPopups = 3
	maxPopups = 15
)

// FallbackTemplates are the guaranteed-safe popup cards, one per canonical
// type. Two-line messages explode into two separate cards.
var FallbackTemplates = map[string]string{
	"pressure":   "Schedule feels crushing right now.\nSlow inhale, slow exhale, one step at a time.",
	"self_doubt": "Mind says you aren't prepared enough.\nCounter it: you have survived tougher days.",
	"panic":      "Heart racing like the bell already rang.\nCount 5-4-3-2-1, eyes back to the sheet.",
	"motivation": "Dream college still needs your fight.\nTiny effort now beats big regret later.",
	"distraction": "Phone gossip will still be there later.\nGive me 10 focused mins, then check it.",
}

var fallbackTypeOrder = []string{"pressure", "self_doubt", "panic", "motivation", "distraction"}

const systemPromptPopups = `You generate intrusive, exam-stress pop-ups shown during a mock test for Indian JEE/NEET students.

Return STRICT JSON only:
{"popups":[{"type":"distraction","message":"...","ttl":8000}]}

Allowed types ONLY:
distraction, self_doubt, panic, pressure, motivation, parental_pressure, fear, doubt, stress, anxiety

Hard limits:
- Generate EXACTLY 12 popups.
- message must be EXACTLY 2 lines using \n.
- Total message length <= 160 characters, each line <= 80.
- Do NOT repeat the same message.

Tone:
- Sharp, sarcastic, urgent. Reference common JEE/NEET stressors.
- Personalize from stress_profile: mention weak_subject, named distractions, family expectations.
- Chat-style prefixes ("Mom: ...", "<friend name>: ...") only for people named in stress_profile.
- No therapy questions, no advice paragraphs.

TTL between 6000 and 9000.`

// PopupService produces the validated popup batch when an interview
// completes.
type PopupService struct {
	llm *LLMClient
	cfg *config.AIConfig
}

func NewPopupService(llm *LLMClient, cfg *config.AIConfig) *PopupService {
	return &PopupService{llm: llm, cfg: cfg}
}

// GeneratePopups runs the full pipeline: model batch, normalization, schema
// and content validation, explosion, dedup, minimum padding, and the hard
// cap. A profile with no filled domains yields nothing.
func (s *PopupService) GeneratePopups(ctx context.Context, filled *slots.Filled, emotionSignals []string) []model.Popup {
	if filled == nil || len(filled.Domains) == 0 {
		return nil
	}

	if s.llm.Enabled() {
		if popups := s.generateFromModel(ctx, filled, emotionSignals); len(popups) > 0 {
			return popups
		}
	}

	fallback := fallbackPopups(minPopups, map[[2]string]bool{}, emotionSignals)
	if len(fallback) > maxPopups {
		fallback = fallback[:maxPopups]
	}
	return fallback
}

func (s *PopupService) generateFromModel(ctx context.Context, filled *slots.Filled, emotionSignals []string) []model.Popup {
	payload, _ := json.Marshal(map[string]interface{}{
		"stress_profile":  filled.Domains,
		"emotion_signals": emotionSignals,
	})

	for attempt := 1; attempt <= 2; attempt++ {
		raw, err := s.llm.GenerateJSON(ctx, s.cfg.Models.Popups, systemPromptPopups, string(payload))
		if err != nil {
			log.Printf("popup batch attempt %d failed: %v", attempt, err)
			break
		}

		var data struct {
			Popups []model.Popup `json:"popups"`
		}
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			log.Printf("popup batch attempt %d bad json: %v", attempt, err)
			continue
		}

		seen := map[[2]string]bool{}
		var valid []model.Popup
		for _, popup := range data.Popups {
			popup.Message = NormalizeTwoLines(popup.Message, 160, 80)
			popup.TTL = clampTTL(popup.TTL)

			if err := popup.Validate(); err != nil {
				log.Printf("popup rejected: %v", err)
				continue
			}
			if !ValidatePopupMessage(popup.Message, filled) {
				continue
			}
			for _, card := range explodePopup(popup) {
				key := [2]string{card.Type, strings.TrimSpace(card.Message)}
				if seen[key] {
					continue
				}
				seen[key] = true
				valid = append(valid, card)
			}
		}

		if len(valid) > 0 {
			if len(valid) < minPopups {
				valid = append(valid, fallbackPopups(minPopups-len(valid), seen, emotionSignals)...)
			}
			if len(valid) > maxPopups {
				valid = valid[:maxPopups]
			}
			return valid
		}
		log.Printf("popup batch attempt %d empty after validation", attempt)
	}
	return nil
}

func clampTTL(ttl int) int {
	if ttl == 0 {
		ttl = 12000
	}
	if ttl < 10000 {
		return 10000
	}
	if ttl > 14000 {
		return 14000
	}
	return ttl
}

// explodePopup splits a multi-line message into one card per line.
func explodePopup(popup model.Popup) []model.Popup {
	var lines []string
	for _, line := range strings.Split(popup.Message, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) <= 1 {
		popup.Message = strings.TrimSpace(popup.Message)
		return []model.Popup{popup}
	}
	out := make([]model.Popup, 0, len(lines))
	for _, line := range lines {
		out = append(out, model.Popup{Type: popup.Type, Message: line, TTL: popup.TTL})
	}
	return out
}

// fallbackPopups emits canned cards, emotion-signal types first, until count
// cards are produced or the catalog runs out.
func fallbackPopups(count int, seen map[[2]string]bool, emotionSignals []string) []model.Popup {
	var ordered []string
	addType := func(t string) {
		if _, ok := FallbackTemplates[t]; !ok {
			return
		}
		for _, existing := range ordered {
			if existing == t {
				return
			}
		}
		ordered = append(ordered, t)
	}
	for _, signal := range emotionSignals {
		addType(signal)
	}
	for _, t := range fallbackTypeOrder {
		addType(t)
	}

	var created []model.Popup
	for _, popupType := range ordered {
		if len(created) >= count {
			break
		}
		for _, line := range strings.Split(FallbackTemplates[popupType], "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			key := [2]string{popupType, line}
			if seen[key] {
				continue
			}
			seen[key] = true
			created = append(created, model.Popup{Type: popupType, Message: line, TTL: 12000})
		}
	}
	return created
}
