package planner

import "testing"

func TestShouldStop(t *testing.T) {
	tests := []struct {
		name    string
		asked   int
		missing int
		min     int
		max     int
		want    bool
	}{
		{"ceiling reached", 6, 10, 3, 6, true},
		{"over ceiling", 7, 10, 3, 6, true},
		{"min met and complete", 3, 0, 3, 6, true},
		{"min met but incomplete", 3, 2, 3, 6, false},
		{"complete before min", 2, 0, 3, 6, false},
		{"fresh session", 0, 12, 3, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldStop(tt.asked, tt.missing, tt.min, tt.max); got != tt.want {
				t.Errorf("ShouldStop(%d, %d, %d, %d) = %v, want %v",
					tt.asked, tt.missing, tt.min, tt.max, got, tt.want)
			}
		})
	}
}
