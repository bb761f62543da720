package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"stressdost/internal/config"
)

// CauseKeys is the fixed cause vocabulary the detector may mark.
var CauseKeys = []string{
	"family_pressure",
	"digital_distraction",
	"social_distraction",
	"academic_confidence",
	"time_pressure",
	"emotional_overwhelm",
}

var componentIDs = map[string]bool{
	"academic_confidence": true,
	"time_pressure":       true,
	"distractions":        true,
	"social_comparison":   true,
	"family_pressure":     true,
	"motivation":          true,
	"demotivation":        true,
	"backlog_stress":      true,
}

const systemPromptCauses = `Given the user text, detect ONLY the causes they explicitly mention.

Allowed causes:
- family_pressure
- digital_distraction
- social_distraction
- academic_confidence
- time_pressure
- emotional_overwhelm

Rules:
- If the user explicitly denies a cause, return false for it.
- Do NOT infer or guess causes that were not clearly stated.
- Return STRICT JSON only with boolean values per cause.`

const systemPromptExtract = `You extract stress components from student text.

Return STRICT JSON only. No markdown. No extra keys.
Allowed ids only:
academic_confidence, time_pressure, distractions, social_comparison, family_pressure, motivation, demotivation, backlog_stress

Output format exactly:
{"components":[{"id":"time_pressure","excerpt":"..."}]}`

// CauseService detects root stress causes and stress components from free
// text, degrading to keyword scans when the model is unavailable or returns
// garbage.
type CauseService struct {
	llm *LLMClient
	cfg *config.AIConfig
}

func NewCauseService(llm *LLMClient, cfg *config.AIConfig) *CauseService {
	return &CauseService{llm: llm, cfg: cfg}
}

// DetectCauses returns the boolean cause map for the text. Model output is
// validated key by key; anything else falls back to the keyword scan.
func (s *CauseService) DetectCauses(ctx context.Context, text string) map[string]bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return defaultCauses()
	}
	if !s.llm.Enabled() {
		return keywordCauses(text)
	}

	payload, _ := json.Marshal(map[string]string{"user_text": truncateRunes(text, 2000)})
	for attempt := 1; attempt <= 2; attempt++ {
		raw, err := s.llm.GenerateJSON(ctx, s.cfg.Models.Causes, systemPromptCauses, string(payload))
		if err != nil {
			log.Printf("detect_causes attempt %d failed: %v", attempt, err)
			continue
		}
		var data map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			log.Printf("detect_causes attempt %d bad json: %v", attempt, err)
			continue
		}
		result := defaultCauses()
		for _, key := range CauseKeys {
			var b bool
			if v, ok := data[key]; ok && json.Unmarshal(v, &b) == nil {
				result[key] = b
			}
		}
		return applyCauseDenials(result, text)
	}
	return keywordCauses(text)
}

// ExtractComponents returns a deduplicated ordered list of domain ids
// detected in the text, with the denial-phrase filter applied.
func (s *CauseService) ExtractComponents(ctx context.Context, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if !s.llm.Enabled() {
		return keywordComponents(text)
	}

	for attempt := 1; attempt <= 2; attempt++ {
		raw, err := s.llm.GenerateJSON(ctx, s.cfg.Models.Causes, systemPromptExtract, truncateRunes(text, 1500))
		if err != nil {
			log.Printf("extract_components attempt %d failed: %v", attempt, err)
			continue
		}
		var data struct {
			Components []struct {
				ID      string `json:"id"`
				Excerpt string `json:"excerpt"`
			} `json:"components"`
		}
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			log.Printf("extract_components attempt %d bad json: %v", attempt, err)
			continue
		}

		seen := map[string]bool{}
		var ordered []string
		valid := true
		for _, component := range data.Components {
			if !componentIDs[component.ID] {
				valid = false
				break
			}
			if !seen[component.ID] {
				seen[component.ID] = true
				ordered = append(ordered, component.ID)
			}
		}
		if !valid {
			log.Printf("extract_components attempt %d returned unknown id", attempt)
			continue
		}
		return filterDomainsByDenials(ordered, text)
	}
	return keywordComponents(text)
}

func defaultCauses() map[string]bool {
	causes := make(map[string]bool, len(CauseKeys))
	for _, key := range CauseKeys {
		causes[key] = false
	}
	return causes
}

// keywordCauses is the deterministic fallback cause detector.
func keywordCauses(text string) map[string]bool {
	lowered := strings.ToLower(text)
	causes := defaultCauses()
	contains := func(tokens ...string) bool {
		for _, token := range tokens {
			if strings.Contains(lowered, token) {
				return true
			}
		}
		return false
	}

	if contains("time", "deadline", "weeks", "days", "exam", "test in", "paper in") {
		causes["time_pressure"] = true
	}
	if contains("phone", "instagram", "youtube", "snapchat", "reel", "shorts", "game", "bgmi", "freefire") {
		causes["digital_distraction"] = true
	}
	if contains("math", "physics", "chemistry", "bio", "marks", "score", "rank", "concepts") {
		causes["academic_confidence"] = true
	}
	if contains("compare", "topper", "better than me", "friends ahead") {
		causes["social_distraction"] = true
	}
	if contains("mom", "dad", "parents", "family", "ghar", "pressure") {
		causes["family_pressure"] = true
	}
	if contains("burnout", "give up", "hopeless", "overwhelm", "panic") {
		causes["emotional_overwhelm"] = true
	}

	return applyCauseDenials(causes, text)
}

// keywordComponents is the deterministic fallback component extractor.
func keywordComponents(text string) []string {
	lowered := strings.ToLower(text)
	var out []string
	add := func(component string) {
		for _, existing := range out {
			if existing == component {
				return
			}
		}
		out = append(out, component)
	}
	contains := func(tokens ...string) bool {
		for _, token := range tokens {
			if strings.Contains(lowered, token) {
				return true
			}
		}
		return false
	}

	if contains("time", "deadline", "weeks", "days", "exam", "test in", "paper in") {
		add("time_pressure")
	}
	if contains("phone", "instagram", "youtube", "snapchat", "reel", "shorts", "game", "bgmi", "freefire") {
		add("distractions")
	}
	if contains("math", "physics", "chemistry", "bio", "marks", "score", "rank", "concepts") {
		add("academic_confidence")
	}
	if contains("compare", "topper", "better than me", "friends ahead", "sharma ji") {
		add("social_comparison")
	}
	if contains("mom", "dad", "parents", "family", "ghar", "pressure") {
		add("family_pressure")
	}
	if contains("motivation", "dream", "goal", "iit", "aiims") {
		add("motivation")
	}
	if contains("demotivat", "tired", "burnout", "give up", "hopeless") {
		add("demotivation")
	}
	if contains("backlog", "syllabus left", "pending chapters") {
		add("backlog_stress")
	}

	return filterDomainsByDenials(out, text)
}

var distractionDenialPhrases = []string{
	"not distracted by phone",
	"not distracted by my phone",
	"not distracted by friends",
	"no phone distraction",
	"no distractions from friends",
}

var comparisonDenialPhrases = []string{
	"dont compare",
	"don't compare",
	"do not compare",
	"i am not comparing",
}

func containsAny(lowered string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// filterDomainsByDenials removes domains the text explicitly denies, even
// when the detector reported them.
func filterDomainsByDenials(activeDomains []string, text string) []string {
	lowered := strings.ToLower(text)
	filtered := make([]string, 0, len(activeDomains))
	for _, domain := range activeDomains {
		if domain == "distractions" && containsAny(lowered, distractionDenialPhrases) {
			continue
		}
		if domain == "social_comparison" && containsAny(lowered, comparisonDenialPhrases) {
			continue
		}
		filtered = append(filtered, domain)
	}
	return filtered
}

// applyCauseDenials enforces the same denial override on the cause map.
func applyCauseDenials(causes map[string]bool, text string) map[string]bool {
	lowered := strings.ToLower(text)
	if containsAny(lowered, distractionDenialPhrases) {
		causes["digital_distraction"] = false
	}
	if containsAny(lowered, comparisonDenialPhrases) {
		causes["social_distraction"] = false
	}
	return causes
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
