package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCliParams(t *testing.T) {
	want := &Run{
		Format:        "auto",
		Mouse:         true,
		ColorScheme:   "default",
		StatusTimeout: 3 * time.Second,
		ExitOnError:   true,
	}
	assert.Equal(t, want, NewCliParams())
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want func(*Run)
	}{
		{
			name: "nothing set",
			env:  map[string]string{},
			want: func(*Run) {},
		},
		{
			name: "ascii and no mouse",
			env:  map[string]string{EnvASCII: "1", EnvNoMouse: "yes"},
			want: func(r *Run) {
				r.ASCII = true
				r.Mouse = false
			},
		},
		{
			name: "scheme and no color",
			env:  map[string]string{EnvColorScheme: " colorblind ", EnvNoColor: "1"},
			want: func(r *Run) {
				r.ColorScheme = "colorblind"
				r.NoColor = true
			},
		},
		{
			name: "blank scheme ignored",
			env:  map[string]string{EnvColorScheme: "  "},
			want: func(*Run) {},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCliParams()
			got.ApplyEnv(func(k string) string { return tt.env[k] })
			want := NewCliParams()
			tt.want(want)
			assert.Equal(t, want, got)
		})
	}
}
