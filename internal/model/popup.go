package model

import (
	"fmt"
	"strings"
)

// Popup is one simulated distraction card delivered over the ws channel.
type Popup struct {
	Type    string `json:"type" bson:"type"`
	Message string `json:"message" bson:"message"`
	TTL     int    `json:"ttl" bson:"ttl"`
}

// popupTypeMap folds the looser type names the generator may emit onto the
// canonical set.
var popupTypeMap = map[string]string{
	"stress":            "panic",
	"anxiety":           "panic",
	"fear":              "panic",
	"panic":             "panic",
	"parental_pressure": "pressure",
	"doubt":             "self_doubt",
	"selfdoubt":         "self_doubt",
	"self_doubt":        "self_doubt",
	"pressure":          "pressure",
	"motivation":        "motivation",
	"distraction":       "distraction",
	"girlfriend":        "distraction",
}

var allowedPopupTypes = map[string]bool{
	"distraction": true,
	"self_doubt":  true,
	"panic":       true,
	"pressure":    true,
	"motivation":  true,
}

// NormalizePopupType maps a raw type name onto the canonical vocabulary.
func NormalizePopupType(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	if mapped, ok := popupTypeMap[key]; ok {
		return mapped
	}
	return key
}

// Validate normalizes the popup in place and rejects anything outside the
// strict schema: canonical type, 5..180 char message, ttl 3000..15000.
func (p *Popup) Validate() error {
	p.Type = NormalizePopupType(p.Type)
	if !allowedPopupTypes[p.Type] {
		return fmt.Errorf("invalid popup type %q", p.Type)
	}

	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(p.Message), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	p.Message = strings.Join(lines, "\n")
	if len(p.Message) < 5 || len(p.Message) > 180 {
		return fmt.Errorf("popup message length %d out of range", len(p.Message))
	}

	if p.TTL < 3000 || p.TTL > 15000 {
		return fmt.Errorf("popup ttl %d out of range", p.TTL)
	}
	return nil
}
