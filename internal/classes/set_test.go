package classes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMembership(t *testing.T) {
	s := NewSet("flex", "hover:opacity-100", "data-[state=open]:bg-accent[data-state=open]")

	assert.True(t, s.Has("flex"))
	assert.False(t, s.Has("fle"))
	require.Equal(t, []string{"data-[state=open]:bg-accent[data-state=open]", "flex", "hover:opacity-100"}, s.Sorted())
}

func TestSetHasPartial(t *testing.T) {
	s := NewSet("flex", "data-[state=open]:bg-accent[data-state=open]")

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "prefix of bracketed member", token: "data-[state=open]:bg-accent", want: true},
		{name: "prefix of plain member", token: "fl", want: false},
		{name: "no member", token: "grid", want: false},
		{name: "whole bracketed member", token: "data-[state=open]:bg-accent[data-state=open]", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, s.HasPartial(tt.token))
		})
	}
}
