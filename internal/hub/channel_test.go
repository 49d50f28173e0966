package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelString(t *testing.T) {
	assert.Equal(t, "user:42", UserChannel("42").String())
	assert.Equal(t, "company:acme", CompanyChannel("acme").String())
	assert.Equal(t, "screen:s-1", ScreenChannel("s-1").String())
}

func TestChannelDeterministic(t *testing.T) {
	// The same (kind, id) always yields the same channel value, so any
	// party can compute it without a lookup.
	assert.Equal(t, UserChannel("42"), UserChannel("42"))

	parsed, ok := ParseChannel(UserChannel("42").String())
	assert.True(t, ok)
	assert.Equal(t, UserChannel("42"), parsed)
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Channel
		ok    bool
	}{
		{"user", "user:42", UserChannel("42"), true},
		{"company", "company:acme", CompanyChannel("acme"), true},
		{"screen", "screen:s-1", ScreenChannel("s-1"), true},
		{"id with colon", "user:a:b", UserChannel("a:b"), true},
		{"unknown kind", "project:42", Channel{}, false},
		{"empty id", "user:", Channel{}, false},
		{"no separator", "user", Channel{}, false},
		{"empty", "", Channel{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseChannel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChannelValid(t *testing.T) {
	assert.True(t, UserChannel("1").Valid())
	assert.False(t, UserChannel("").Valid())
	assert.False(t, Channel{Kind: "job", ID: "1"}.Valid())
}
