package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRoster(t *testing.T) {
	tests := []struct {
		name          string
		voices        []string
		want          []string
		wantTruncated bool
	}{
		{name: "空列表", voices: nil, want: nil, wantTruncated: false},
		{name: "单人", voices: []string{"主持人"}, want: []string{"主持人"}, wantTruncated: false},
		{name: "恰好5人", voices: []string{"A", "B", "C", "D", "E"}, want: []string{"A", "B", "C", "D", "E"}, wantTruncated: false},
		{name: "超出截断", voices: []string{"A", "B", "C", "D", "E", "F"}, want: []string{"A", "B", "C", "D", "E"}, wantTruncated: true},
		{name: "大幅超出", voices: []string{"1", "2", "3", "4", "5", "6", "7", "8"}, want: []string{"1", "2", "3", "4", "5"}, wantTruncated: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := ValidateRoster(tt.voices)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}
}
