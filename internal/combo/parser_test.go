package combo

import "testing"

func TestParseFriendCompareEmotion(t *testing.T) {
	result, ok := Parse("friend_compare_emotion", "Raj\nAmit | big\npanic")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if len(result.Assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(result.Assignments))
	}

	byKey := map[string]string{}
	for _, a := range result.Assignments {
		byKey[a.Ref.Domain+"."+a.Ref.Slot] = a.Value
	}
	if byKey["distractions.friend_name"] != "Raj" {
		t.Errorf("friend_name = %q", byKey["distractions.friend_name"])
	}
	if byKey["social_comparison.comparison_person"] != "Amit" {
		t.Errorf("comparison_person = %q", byKey["social_comparison.comparison_person"])
	}
	if byKey["social_comparison.comparison_gap"] != "big gap" {
		t.Errorf("comparison_gap = %q", byKey["social_comparison.comparison_gap"])
	}
	if result.Emotion != "panic" {
		t.Errorf("emotion = %q", result.Emotion)
	}
}

func TestParseFriendCompareEmotionRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"too few lines", "Raj\nAmit | big"},
		{"missing pipe", "Raj\nAmit big\npanic"},
		{"unknown emotion", "Raj\nAmit | big\nsleepy"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Parse("friend_compare_emotion", tt.text); ok {
				t.Errorf("expected rejection for %q", tt.text)
			}
		})
	}
}

func TestParseDistractionTime(t *testing.T) {
	result, ok := Parse("distraction_time_combo", "BGMI\n2-3 hours\nphone and laziness")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	byKey := map[string]string{}
	for _, a := range result.Assignments {
		byKey[a.Ref.Domain+"."+a.Ref.Slot] = a.Value
	}
	if byKey["distractions.gaming_app"] != "BGMI" {
		t.Errorf("gaming_app = %q", byKey["distractions.gaming_app"])
	}
	if byKey["distractions.gaming_time"] != "2-3 hours" {
		t.Errorf("gaming_time = %q", byKey["distractions.gaming_time"])
	}
	if byKey["time_pressure.timetable_breaker"] != "phone and laziness" {
		t.Errorf("timetable_breaker = %q", byKey["time_pressure.timetable_breaker"])
	}
	if result.Emotion != "" {
		t.Errorf("unexpected emotion %q", result.Emotion)
	}
}

func TestParseUnknownCombo(t *testing.T) {
	if _, ok := Parse("mystery_combo", "a\nb\nc"); ok {
		t.Error("unknown combos must not parse")
	}
}

func TestNormalizeGap(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BIG difference", "big gap"},
		{"feels small honestly", "small gap"},
		{"  Medium  ", "medium"},
	}
	for _, tt := range tests {
		if got := NormalizeGap(tt.in); got != tt.want {
			t.Errorf("NormalizeGap(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEmotionCues(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantOK  bool
	}{
		{"pressure", "pressure", true},
		{"really anxious", "panic", true},
		{"doubting myself", "self_doubt", true},
		{"parents expect a lot", "pressure", true},
		{"still hopeful", "motivation", true},
		{"fine", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeEmotion(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NormalizeEmotion(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
