package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.co", true},
		{"user+notes@example.com", true},
		{"", false},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@", false},
		{"user@nodot", false},
		{"two@@example.com", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidEmail(tc.email), "email %q", tc.email)
	}
}

func TestUsernameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"colleague@example.com", "colleague"},
		{"first.last@example.com", "first.last"},
		{"noat", ""},
		{"@example.com", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, UsernameFromEmail(tc.email))
	}
}
