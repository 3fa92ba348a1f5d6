package handlers

import (
	"testing"
	"time"
)

func TestTaakPrioriteit(t *testing.T) {
	nu := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	over := func(d time.Duration) *time.Time {
		dl := nu.Add(d)
		return &dl
	}

	tests := []struct {
		naam     string
		deadline *time.Time
		want     string
	}{
		{"geen deadline", nil, "laag"},
		{"verlopen", over(-48 * time.Hour), "hoog"},
		{"vandaag", over(2 * time.Hour), "hoog"},
		{"binnen drie dagen", over(3 * 24 * time.Hour), "hoog"},
		{"binnen een week", over(6 * 24 * time.Hour), "middel"},
		{"volgende maand", over(30 * 24 * time.Hour), "laag"},
	}
	for _, tt := range tests {
		if got := taakPrioriteit(tt.deadline, nu); got != tt.want {
			t.Errorf("%s: prioriteit = %s, want %s", tt.naam, got, tt.want)
		}
	}
}
