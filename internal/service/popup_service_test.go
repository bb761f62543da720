package service

import (
	"context"
	"testing"

	"stressdost/internal/config"
	"stressdost/internal/model"
	"stressdost/internal/slots"
)

func newDisabledPopupService() *PopupService {
	cfg := &config.AIConfig{} // no API key, model path disabled
	return NewPopupService(NewLLMClient(cfg), cfg)
}

func TestGeneratePopupsEmptyProfile(t *testing.T) {
	svc := newDisabledPopupService()
	if got := svc.GeneratePopups(context.Background(), slots.NewFilled(), nil); len(got) != 0 {
		t.Errorf("empty profile must produce no popups, got %d", len(got))
	}
}

func TestGeneratePopupsFallbackBatch(t *testing.T) {
	svc := newDisabledPopupService()
	filled := slots.NewFilled()
	filled.Set("academic_confidence", "weak_subject", "math")

	got := svc.GeneratePopups(context.Background(), filled, nil)
	if len(got) < minPopups {
		t.Fatalf("expected at least %d popups, got %d", minPopups, len(got))
	}
	if len(got) > maxPopups {
		t.Fatalf("expected at most %d popups, got %d", maxPopups, len(got))
	}
	// Fallback cards are single lines with the fixed ttl.
	for _, p := range got {
		if p.TTL != 12000 {
			t.Errorf("fallback ttl = %d", p.TTL)
		}
	}
	// Without signals the catalog order leads with pressure.
	if got[0].Type != "pressure" {
		t.Errorf("first fallback type = %q", got[0].Type)
	}
}

func TestFallbackPopupsSignalsFirst(t *testing.T) {
	got := fallbackPopups(3, map[[2]string]bool{}, []string{"distraction", "panic"})
	if len(got) < 3 {
		t.Fatalf("expected 3 popups, got %d", len(got))
	}
	if got[0].Type != "distraction" {
		t.Errorf("first type = %q, want distraction", got[0].Type)
	}
}

func TestFallbackPopupsSkipsSeen(t *testing.T) {
	seen := map[[2]string]bool{}
	first := fallbackPopups(2, seen, nil)
	second := fallbackPopups(2, seen, nil)
	for _, a := range first {
		for _, b := range second {
			if a.Type == b.Type && a.Message == b.Message {
				t.Errorf("duplicate card emitted: %+v", a)
			}
		}
	}
}

func TestExplodePopup(t *testing.T) {
	cards := explodePopup(model.Popup{Type: "panic", Message: "Line one.\nLine two.", TTL: 11000})
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Message != "Line one." || cards[1].Message != "Line two." {
		t.Errorf("unexpected split: %+v", cards)
	}
	for _, c := range cards {
		if c.Type != "panic" || c.TTL != 11000 {
			t.Errorf("card lost attributes: %+v", c)
		}
	}

	single := explodePopup(model.Popup{Type: "pressure", Message: " one line ", TTL: 11000})
	if len(single) != 1 || single[0].Message != "one line" {
		t.Errorf("unexpected single-line handling: %+v", single)
	}
}
