package services

import "testing"

func TestIsToxic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"uppercase blocked term", "I HATE this", true},
		{"clean text", "This is a happy song", false},
		{"term inside longer word", "skillet recipes", true}, // substring policy, no word boundaries
		{"benign word sharing letters", "classic motown", false},
		{"empty text", "", false},
		{"insult", "you are stupid", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsToxic(tc.text); got != tc.want {
				t.Errorf("IsToxic(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
