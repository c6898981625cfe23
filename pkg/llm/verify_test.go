package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrounded(t *testing.T) {
	source := "My right honourable friend asked the Office for National " +
		"Statistics to publish the figures. The figures were published in March."

	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{
			name:     "verbatim substring",
			response: "asked the Office for National Statistics to publish the figures",
			want:     true,
		},
		{
			name:     "verbatim with different punctuation and case",
			response: "Asked the office for national statistics, to publish the figures!",
			want:     true,
		},
		{
			name:     "multiple grounded units",
			response: "My right honourable friend asked. The figures were published in March.",
			want:     true,
		},
		{
			name:     "paraphrased response fails",
			response: "The ONS was requested to release the data.",
			want:     false,
		},
		{
			name:     "one ungrounded unit fails the whole response",
			response: "The figures were published in March. Nobody was pleased about it.",
			want:     false,
		},
		{
			name:     "empty response trivially passes",
			response: "",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Grounded(tt.response, source))
		})
	}
}

func TestGroundedSourceVerbatim(t *testing.T) {
	source := "Exactly what was said. Nothing more."
	assert.True(t, Grounded(source, source))
}

func TestGroundedKeepsAccentedNames(t *testing.T) {
	source := "Siân Davies raised the point about the census."

	assert.True(t, Grounded("Siân Davies raised the point", source))
	assert.False(t, Grounded("Sin Davies raised the point", source),
		"stripping the accented letter must not create a match")
}
