package model

import "stressdost/internal/slots"

// Request/response contracts for the session-facing turn operations.

type StartRequest struct {
	Text string `json:"text"`
}

type StartResponse struct {
	SessionID     string        `json:"session_id"`
	Status        SessionStatus `json:"status"`
	ActiveDomains []string      `json:"active_domains"`
	Prefilled     *slots.Filled `json:"prefilled"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
	Domain string `json:"domain,omitempty"`
	Slot   string `json:"slot,omitempty"`
}

type AnswerResponse struct {
	OK                bool          `json:"ok,omitempty"`
	NeedClarification bool          `json:"need_clarification,omitempty"`
	Domain            string        `json:"domain,omitempty"`
	Slot              string        `json:"slot,omitempty"`
	Question          string        `json:"question,omitempty"`
	FilledSlots       *slots.Filled `json:"filled_slots,omitempty"`
	Meta              *Meta         `json:"meta,omitempty"`
}

type NextQuestionResponse struct {
	Done        bool          `json:"done"`
	Pending     bool          `json:"pending,omitempty"`
	Combo       bool          `json:"combo,omitempty"`
	Domain      string        `json:"domain,omitempty"`
	Slot        string        `json:"slot,omitempty"`
	Question    string        `json:"question,omitempty"`
	Hint        string        `json:"hint,omitempty"`
	Message     string        `json:"message,omitempty"`
	Status      SessionStatus `json:"status,omitempty"`
	PopupsReady bool          `json:"popups_ready,omitempty"`
	PopupsCount int           `json:"popups_count,omitempty"`
	FilledSlots *slots.Filled `json:"filled_slots,omitempty"`
	Meta        *Meta         `json:"meta,omitempty"`
}

// PrefillResult is the validated output of the slot-prefill collaborator.
type PrefillResult struct {
	ActiveDomains []string                     `json:"active_domains"`
	Prefill       map[string]map[string]string `json:"prefill"`
	NegatedSlots  []string                     `json:"negated_slots"`
}

type StatusResponse struct {
	SessionID     string        `json:"session_id"`
	Status        SessionStatus `json:"status"`
	ActiveDomains []string      `json:"active_domains"`
	FilledSlots   *slots.Filled `json:"filled_slots"`
	Meta          *Meta         `json:"meta"`
}

type DebugResponse struct {
	ID          string        `json:"id"`
	Status      SessionStatus `json:"status"`
	PopupsCount int           `json:"popups_count"`
	Popups      []Popup       `json:"popups"`
	FilledSlots *slots.Filled `json:"filled_slots"`
	Meta        *Meta         `json:"meta"`
}
