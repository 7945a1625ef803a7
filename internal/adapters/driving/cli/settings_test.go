package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kadolab/kado-cli/internal/core/domain"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "short key fully masked", key: "abc123", want: "****"},
		{name: "eight chars still fully masked", key: "12345678", want: "****"},
		{name: "long key keeps edges", key: "sk-1234567890abcdef", want: "sk-1...cdef"},
		{name: "empty key", key: "", want: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskAPIKey(tt.key))
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		fallback int
		want     int
	}{
		{name: "empty input falls back", input: "", max: 5, fallback: 1, want: 1},
		{name: "in-range choice accepted", input: "3", max: 5, fallback: 1, want: 3},
		{name: "zero falls back", input: "0", max: 5, fallback: 1, want: 1},
		{name: "above max falls back", input: "6", max: 5, fallback: 1, want: 1},
		{name: "non-numeric falls back", input: "abc", max: 5, fallback: 2, want: 2},
		{name: "max itself accepted", input: "5", max: 5, fallback: 1, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseChoice(tt.input, tt.max, tt.fallback))
		})
	}
}

func TestAllProviders(t *testing.T) {
	providers := allProviders()

	assert.Equal(t, []domain.AIProvider{domain.AIProviderMistral, domain.AIProviderOpenAI}, providers)
	for _, p := range providers {
		assert.True(t, p.IsValid())
	}
}
