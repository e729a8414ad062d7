package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailscale/hujson"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid limit only",
			cfg:     Config{Limit: 10},
			wantErr: false,
		},
		{
			name:    "valid offset only",
			cfg:     Config{Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid limit and offset",
			cfg:     Config{Limit: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid tail only",
			cfg:     Config{Tail: 10},
			wantErr: false,
		},
		{
			name:    "tail ignores offset (valid)",
			cfg:     Config{Tail: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "limit and tail mutually exclusive",
			cfg:     Config{Limit: 10, Tail: 5},
			wantErr: true,
			errMsg:  "mutually exclusive",
		},
		{
			name:    "negative limit invalid",
			cfg:     Config{Limit: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative offset invalid",
			cfg:     Config{Offset: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative tail invalid",
			cfg:     Config{Tail: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "zero values valid",
			cfg:     Config{Limit: 0, Offset: 0, Tail: 0},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigIsActive(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantBool bool
	}{
		{
			name:     "no flags set",
			cfg:      Config{},
			wantBool: false,
		},
		{
			name:     "limit set",
			cfg:      Config{Limit: 10},
			wantBool: true,
		},
		{
			name:     "offset set",
			cfg:      Config{Offset: 5},
			wantBool: true,
		},
		{
			name:     "tail set",
			cfg:      Config{Tail: 10},
			wantBool: true,
		},
		{
			name:     "all flags set",
			cfg:      Config{Limit: 10, Offset: 5, Tail: 0}, // tail not really set
			wantBool: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.IsActive()
			assert.Equal(t, tt.wantBool, got)
		})
	}
}

func parse(t *testing.T, input string) hujson.Value {
	t.Helper()
	v, err := hujson.Parse([]byte(input))
	require.NoError(t, err)
	return v
}

func compact(v hujson.Value) string {
	c := v.Clone()
	c.Minimize()
	return c.String()
}

func TestApplyToArray(t *testing.T) {
	arr := parse(t, `[1, 2, 3, 4, 5, 6, 7, 8, 9, 10]`)

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "limit only", cfg: Config{Limit: 3}, want: `[1,2,3]`},
		{name: "offset only", cfg: Config{Offset: 5}, want: `[6,7,8,9,10]`},
		{name: "limit and offset", cfg: Config{Limit: 3, Offset: 2}, want: `[3,4,5]`},
		{name: "tail only", cfg: Config{Tail: 3}, want: `[8,9,10]`},
		{name: "tail ignores offset", cfg: Config{Tail: 2, Offset: 1}, want: `[9,10]`},
		{name: "offset larger than array", cfg: Config{Offset: 20}, want: `[]`},
		{name: "limit larger than remaining", cfg: Config{Limit: 100, Offset: 5}, want: `[6,7,8,9,10]`},
		{name: "tail larger than array", cfg: Config{Tail: 100}, want: `[1,2,3,4,5,6,7,8,9,10]`},
		{name: "limit zero (unlimited)", cfg: Config{Limit: 0}, want: `[1,2,3,4,5,6,7,8,9,10]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compact(tt.cfg.Apply(arr)))
		})
	}
	assert.Equal(t, `[1,2,3,4,5,6,7,8,9,10]`, compact(arr), "input is not modified")
}

func TestApplyToObject(t *testing.T) {
	obj := parse(t, `{"e": 5, "a": 1, "d": 4, "b": 2, "c": 3}`)

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "limit keeps member order", cfg: Config{Limit: 2}, want: `{"e":5,"a":1}`},
		{name: "offset", cfg: Config{Offset: 3}, want: `{"b":2,"c":3}`},
		{name: "limit and offset", cfg: Config{Limit: 2, Offset: 1}, want: `{"a":1,"d":4}`},
		{name: "tail", cfg: Config{Tail: 1}, want: `{"c":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compact(tt.cfg.Apply(obj)))
		})
	}
}

func TestApplyToScalar(t *testing.T) {
	v := parse(t, `"text"`)
	assert.Equal(t, `"text"`, compact(Config{Limit: 1}.Apply(v)))
}

func TestWindow(t *testing.T) {
	tests := []struct {
		cfg        Config
		n          int
		start, end int
	}{
		{Config{}, 4, 0, 4},
		{Config{Limit: 2}, 4, 0, 2},
		{Config{Offset: 3, Limit: 5}, 4, 3, 4},
		{Config{Offset: 9}, 4, 4, 4},
		{Config{Tail: 3}, 2, 0, 2},
		{Config{Tail: 1}, 0, 0, 0},
	}
	for _, tt := range tests {
		start, end := tt.cfg.Window(tt.n)
		assert.Equal(t, tt.start, start, "%+v", tt.cfg)
		assert.Equal(t, tt.end, end, "%+v", tt.cfg)
	}
}
