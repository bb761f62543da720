package model

import (
	"time"

	"stressdost/internal/slots"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// Turn is one history entry of the interview transcript.
type Turn struct {
	Role string `json:"role" bson:"role"`
	Text string `json:"text" bson:"text"`
}

// QuestionType distinguishes a plain slot question from a combo prompt.
const QuestionTypeCombo = "combo"

// CurrentQuestion describes the question awaiting an answer. Either ComboID
// is set (Type == combo) or Domain/Slot are.
type CurrentQuestion struct {
	Type     string `json:"type,omitempty" bson:"type,omitempty"`
	ComboID  string `json:"comboId,omitempty" bson:"comboId,omitempty"`
	Domain   string `json:"domain,omitempty" bson:"domain,omitempty"`
	Slot     string `json:"slot,omitempty" bson:"slot,omitempty"`
	Question string `json:"question" bson:"question"`
}

// Meta is the session's bookkeeping bag. Fields are enumerated explicitly so
// every turn transition stays checkable.
type Meta struct {
	Causes              map[string]bool  `json:"causes,omitempty" bson:"causes,omitempty"`
	TotalQuestionsAsked int              `json:"totalQuestionsAsked" bson:"totalQuestionsAsked"`
	DomainQuestionCount map[string]int   `json:"domainQuestionCount" bson:"domainQuestionCount"`
	ClarifierUsed       []string         `json:"clarifierUsed" bson:"clarifierUsed"`
	CurrentQuestion     *CurrentQuestion `json:"currentQuestion,omitempty" bson:"currentQuestion,omitempty"`
	LastQuestion        string           `json:"lastQuestion,omitempty" bson:"lastQuestion,omitempty"`
	ComboHistory        []string         `json:"comboHistory" bson:"comboHistory"`
	EmotionSignals      []string         `json:"emotionSignals" bson:"emotionSignals"`
}

// Session is the unit of conversational state. It is owned by exactly one
// turn at a time; concurrent turns on the same session must be serialized by
// the caller.
type Session struct {
	ID             string        `json:"id" bson:"_id"`
	Status         SessionStatus `json:"status" bson:"status"`
	RawInitialText string        `json:"rawInitialText" bson:"rawInitialText"`
	History        []Turn        `json:"history" bson:"history"`
	ActiveDomains  []string      `json:"activeDomains" bson:"activeDomains"`
	FilledSlots    *slots.Filled `json:"filledSlots" bson:"filledSlots"`
	Meta           Meta          `json:"meta" bson:"meta"`
	Popups         []Popup       `json:"popups" bson:"popups"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// NewSession seeds a fresh active session from the student's opening text.
func NewSession(id, text string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:             id,
		Status:         SessionActive,
		RawInitialText: text,
		History:        []Turn{{Role: "user", Text: text}},
		ActiveDomains:  []string{},
		FilledSlots:    slots.NewFilled(),
		Meta: Meta{
			DomainQuestionCount: map[string]int{},
			ClarifierUsed:       []string{},
			ComboHistory:        []string{},
			EmotionSignals:      []string{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
