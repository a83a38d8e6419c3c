package binstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutRejectsOutOfRangeFields(t *testing.T) {
	tests := []struct {
		name  string
		build func(*Layout)
	}{
		{"uint32 past end", func(l *Layout) { l.Uint32("X", 13) }},
		{"uint16 past end", func(l *Layout) { l.Uint16("X", 15) }},
		{"uint8 at size", func(l *Layout) { l.Uint8("X", 16) }},
		{"negative offset", func(l *Layout) { l.Uint8("X", -1) }},
		{"string past end", func(l *Layout) { l.String("X", 10, 8) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(16)
			assert.Panics(t, func() { tt.build(l) })
		})
	}
}

func TestLayoutRejectsDuplicateNames(t *testing.T) {
	l := NewLayout(16)
	l.Uint8("Mode", 0)
	assert.Panics(t, func() { l.Uint8("Mode", 1) })
}

func TestLayoutRejectsBadMasks(t *testing.T) {
	l := NewLayout(16)
	assert.Panics(t, func() { l.Flag("F", 0, 0x00) })
	assert.Panics(t, func() { l.Flag("F", 0, 0x03) })
	assert.Panics(t, func() { l.Enum("E", 0, 0x00) })
}

func TestFieldLookup(t *testing.T) {
	l := NewLayout(16)
	l.Uint8("Mode", 0)

	require.NotNil(t, l.Field("Mode"))
	assert.Nil(t, l.Field("Missing"))
	assert.Equal(t, 16, l.Size())
}
