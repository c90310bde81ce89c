package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Midterm exam  ", "Midterm exam"},
		{"multiple spaces between words", "Midterm    exam", "Midterm exam"},
		{"tabs and newlines", "Midterm\t\nexam", "Midterm exam"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"preserve special characters", " Café & Spa™ ", "Café & Spa™"},
		{"strip control characters", "Mid\x00term\x07 exam", "Midterm exam"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, TrimAndNormalize(got), "must be idempotent")
		})
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "A101", NormalizeIdentifier(" a 101 "))
	assert.Equal(t, "B", NormalizeIdentifier("b"))
	assert.Equal(t, "", NormalizeIdentifier("   "))
}

func TestNormalizeWeekday(t *testing.T) {
	assert.Equal(t, "Monday", NormalizeWeekday(" monday "))
	assert.Equal(t, "Friday", NormalizeWeekday("FRIDAY"))
	assert.Equal(t, "", NormalizeWeekday(""))
	assert.Equal(t, "Funday", NormalizeWeekday("funday"))
}

func TestNormalizeClockTime(t *testing.T) {
	tests := map[string]string{
		"9:00":   "09:00",
		" 9:30 ": "09:30",
		"09:00":  "09:00",
		"23:59":  "23:59",
		"nine":   "nine",
		"x:00":   "x:00",
		"":       "",
	}
	for input, want := range tests {
		assert.Equal(t, want, NormalizeClockTime(input), input)
	}
}
