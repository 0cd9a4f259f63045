package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 7, ParseInt("7", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-3", 1))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-18")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, 18, d.Day())

	_, err = ParseDate("18/09/2026")
	assert.Error(t, err)
}

func TestGenerateBookingReference(t *testing.T) {
	reference := GenerateBookingReference()
	assert.Regexp(t, `^BK-\d{8}-\d{6}-\d{4}$`, reference)
}

func TestGenerateSeriesKey(t *testing.T) {
	key := GenerateSeriesKey()
	_, err := uuid.Parse(key)
	require.NoError(t, err)
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		perPage int
		want    int
	}{
		{name: "partial last page", total: 42, perPage: 20, want: 3},
		{name: "exact fit", total: 40, perPage: 20, want: 2},
		{name: "single row", total: 1, perPage: 20, want: 1},
		{name: "nothing", total: 0, perPage: 20, want: 0},
		{name: "zero per page", total: 42, perPage: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTotalPages(tt.total, tt.perPage))
		})
	}
}
