package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"stressdost/internal/config"
	"stressdost/internal/slots"
)

const systemPromptQuestion = `You write ONE short, personalized follow-up question for an Indian JEE/NEET student.

Return STRICT JSON only:
{"question":"..."}

Rules:
- Output must be a single question ending with "?"
- No extra text. No numbering. No quotes outside JSON.
- Ask ONLY about the requested domain+slot.
- Do NOT ask about slots listed in negated_slots.
- Do not repeat the last question.
- Keep it simple English (no therapy tone).`

// QuestionContext carries the session state a question is generated against.
type QuestionContext struct {
	UserText     string
	Excerpt      string
	Filled       *slots.Filled
	LastQuestion string
}

// QuestionService generates slot questions, validating model output and
// degrading to the canned catalog.
type QuestionService struct {
	llm *LLMClient
	cfg *config.AIConfig
}

func NewQuestionService(llm *LLMClient, cfg *config.AIConfig) *QuestionService {
	return &QuestionService{llm: llm, cfg: cfg}
}

// GenerateQuestion returns a validated question for the slot, preferring
// model output over the canned fallback. The empty string means no usable
// question exists for this slot on this turn: even the fallback would repeat
// the last question.
func (s *QuestionService) GenerateQuestion(ctx context.Context, domain, slot string, qctx QuestionContext) string {
	lastQuestion := strings.TrimSpace(qctx.LastQuestion)
	fallback := FallbackQuestion(domain, slot)

	if s.llm.Enabled() {
		var negated []string
		var filledDomains map[string]map[string]string
		if qctx.Filled != nil {
			negated = qctx.Filled.Negated
			filledDomains = qctx.Filled.Domains
		}
		payload, _ := json.Marshal(map[string]interface{}{
			"domain":        domain,
			"slot":          slot,
			"student_text":  truncateRunes(qctx.UserText, 1200),
			"filled_slots":  filledDomains,
			"negated_slots": negated,
			"excerpt":       qctx.Excerpt,
			"last_question": lastQuestion,
		})

		for attempt := 1; attempt <= 2; attempt++ {
			raw, err := s.llm.GenerateJSON(ctx, s.cfg.Models.Question, systemPromptQuestion, string(payload))
			if err != nil {
				log.Printf("question %s/%s attempt %d failed: %v", domain, slot, attempt, err)
				continue
			}
			var data struct {
				Question string `json:"question"`
			}
			if err := json.Unmarshal([]byte(raw), &data); err != nil {
				log.Printf("question %s/%s attempt %d bad json: %v", domain, slot, attempt, err)
				continue
			}
			question := strings.Join(strings.Fields(data.Question), " ")
			if question != "" && question != lastQuestion && IsValidQuestion(question) {
				return question
			}
			log.Printf("question %s/%s attempt %d rejected: %q", domain, slot, attempt, question)
		}
	}

	if fallback == lastQuestion {
		return ""
	}
	return fallback
}
