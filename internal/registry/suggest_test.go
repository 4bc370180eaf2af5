package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	groups := []string{"Casual", "CasualShoes", "Formal", "Beachwear"}

	tests := []struct {
		name       string
		input      string
		candidates []string
		want       string
	}{
		{
			name:       "one-letter typo",
			input:      "Casuall",
			candidates: groups,
			want:       "Casual",
		},
		{
			name:       "case difference only",
			input:      "formal",
			candidates: groups,
			want:       "Formal",
		},
		{
			name:       "nothing close enough",
			input:      "Winterwear",
			candidates: groups,
			want:       "",
		},
		{
			name:       "exact match is not a suggestion",
			input:      "Formal",
			candidates: groups,
			want:       "",
		},
		{
			name:       "no candidates",
			input:      "Casual",
			candidates: nil,
			want:       "",
		},
		{
			name:       "empty input",
			input:      "",
			candidates: groups,
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, suggest(tt.input, tt.candidates))
		})
	}
}
