package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPreferenceRecord_Complete tests the minimum-fields rule
func TestPreferenceRecord_Complete(t *testing.T) {
	tests := []struct {
		name     string
		record   PreferenceRecord
		complete bool
	}{
		{
			name:     "empty record",
			record:   PreferenceRecord{},
			complete: false,
		},
		{
			name:     "description only",
			record:   PreferenceRecord{Description: "my mother, 50"},
			complete: false,
		},
		{
			name:     "interests only",
			record:   PreferenceRecord{Interests: "cooking"},
			complete: false,
		},
		{
			name:     "description and interests",
			record:   PreferenceRecord{Description: "my mother, 50", Interests: "cooking, reading"},
			complete: true,
		},
		{
			name:     "whitespace does not count",
			record:   PreferenceRecord{Description: "  ", Interests: "cooking"},
			complete: false,
		},
		{
			name: "budget and context alone are not enough",
			record: PreferenceRecord{
				PriceRange: "100 euros",
				Context:    "birthday",
			},
			complete: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.complete, tt.record.Complete())
		})
	}
}

// TestPreferenceRecord_RetrievalQuery tests query composition
func TestPreferenceRecord_RetrievalQuery(t *testing.T) {
	record := PreferenceRecord{
		Description: "my mother, 50",
		Interests:   "cooking and reading",
	}

	assert.Equal(t, "Gift for my mother, 50 who likes cooking and reading", record.RetrievalQuery())
}

// TestPreferenceRecord_Summary tests that unknown fields stay unspecified
func TestPreferenceRecord_Summary(t *testing.T) {
	record := PreferenceRecord{
		Description: "my mother",
		Interests:   "cooking",
	}

	summary := record.Summary()
	assert.Contains(t, summary, "Recipient: my mother")
	assert.Contains(t, summary, "Interests: cooking")
	assert.Contains(t, summary, "Budget: not specified")
	assert.Contains(t, summary, "Occasion: not specified")
}

// TestPreferenceRecord_IsEmpty tests the zero-value check
func TestPreferenceRecord_IsEmpty(t *testing.T) {
	assert.True(t, PreferenceRecord{}.IsEmpty())
	assert.False(t, PreferenceRecord{Context: "birthday"}.IsEmpty())
}
