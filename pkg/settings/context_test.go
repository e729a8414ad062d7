package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantOk bool
	}{
		{"with settings", IntoContext(context.Background(), &Run{ASCII: true}), true},
		{"without settings", context.Background(), false},
		{"wrong type", context.WithValue(context.Background(), contextKey{}, "nope"), false},
		{"nil settings", IntoContext(context.Background(), nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromContext(tt.ctx)
			assert.Equal(t, tt.wantOk, ok)
			if !tt.wantOk {
				assert.Nil(t, got)
			}
		})
	}
}

func TestIntoContextRoundTrip(t *testing.T) {
	s := &Run{NoColor: true, ColorScheme: "colorblind"}
	got, ok := FromContext(IntoContext(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestFromContextOrDefault(t *testing.T) {
	assert.Equal(t, NewCliParams(), FromContextOrDefault(context.Background()))

	s := &Run{Decode: true}
	assert.Same(t, s, FromContextOrDefault(IntoContext(context.Background(), s)))
}
