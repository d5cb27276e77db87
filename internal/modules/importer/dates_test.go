package importer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate_AcceptedFormats(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{"iso", "2024-03-05"},
		{"us slashes", "03/05/2024"},
		{"day first dashes", "05-03-2024"},
		{"surrounding whitespace", "  2024-03-05  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s", got)
		})
	}
}

func TestNormalizeDate_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"month thirteen", "2024-13-01"},
		{"day thirty two", "2024-01-32"},
		{"free text", "not-a-date"},
		{"empty", ""},
		{"blank", "   "},
		{"partial", "2024-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeDate(tt.input)
			require.Error(t, err)

			var parseErr *DateParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.input, parseErr.Input)
		})
	}
}
