package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackCategories(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"How do I recycle plastic bottles?", "plastic"},
		{"what about ORGANIC waste", "compost"},
		{"can I make biogas at home", "biogas"},
		{"composting tips please", "compost"},
		{"where do cardboard boxes go", "cardboard"},
		{"is paper recyclable", "paper"},
		{"hello", "recycling questions"},
	}
	for _, tc := range cases {
		got := Fallback(tc.message)
		assert.Containsf(t, strings.ToLower(got), tc.want,
			"message %q should answer about %s", tc.message, tc.want)
	}
}

func TestFallbackDeterministic(t *testing.T) {
	msg := "plastic and paper and compost"
	first := Fallback(msg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Fallback(msg))
	}
}

func TestReplyWithoutAPIKeyUsesFallback(t *testing.T) {
	a := New("")
	got := a.Reply(context.Background(), "how to recycle plastic?")
	assert.Equal(t, Fallback("how to recycle plastic?"), got)
}
