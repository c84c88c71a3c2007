package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Shoe", "%shoe%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\tmp`, `%c:\\tmp%`},
		{"", "%%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsPattern(tt.in), "input %q", tt.in)
	}
}
