package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"stressdost/internal/config"
)

const systemPromptGate = `You decide whether one interview slot is worth asking given the student's text.

Return STRICT JSON only: {"ask": true} or {"ask": false}

Say false only when the slot is clearly irrelevant to what the student wrote.
When in doubt, say true.`

// GateService performs the per-slot eligibility check before the planner
// commits to a question. It fails open: any error means ask.
type GateService struct {
	llm *LLMClient
	cfg *config.AIConfig
}

func NewGateService(llm *LLMClient, cfg *config.AIConfig) *GateService {
	return &GateService{llm: llm, cfg: cfg}
}

// ShouldAskSlot reports whether the slot is worth asking for this student.
func (s *GateService) ShouldAskSlot(ctx context.Context, userText, domain, slot string) bool {
	if !s.llm.Enabled() {
		return true
	}

	payload, _ := json.Marshal(map[string]string{
		"user_text": truncateRunes(strings.TrimSpace(userText), 1200),
		"domain":    domain,
		"slot":      slot,
	})

	raw, err := s.llm.GenerateJSON(ctx, s.cfg.Models.Gate, systemPromptGate, string(payload))
	if err != nil {
		log.Printf("slot gate %s/%s failed, asking anyway: %v", domain, slot, err)
		return true
	}

	var parsed struct {
		Ask *bool `json:"ask"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed.Ask == nil {
		return true
	}
	return *parsed.Ask
}
