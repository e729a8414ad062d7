package formatter

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jview/pkg/loader"
)

func TestPretty(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "scalar", input: `42`, want: `42`},
		{name: "empty object", input: `{}`, want: `{}`},
		{name: "empty array", input: `[ ]`, want: `[]`},
		{
			name:  "nested",
			input: `{"a":1,"b":[true,null,"x"],"c":{}}`,
			want:  "{\n  \"a\": 1,\n  \"b\": [\n    true,\n    null,\n    \"x\"\n  ],\n  \"c\": {}\n}",
		},
		{
			name:  "special numbers",
			input: `[NaN, Infinity, -Infinity]`,
			want:  "[\n  NaN,\n  Infinity,\n  -Infinity\n]",
		},
		{
			name:  "comments and trailing commas dropped",
			input: "{\n  // c\n  \"k\": \"v\", /* d */\n}",
			want:  "{\n  \"k\": \"v\"\n}",
		},
		{
			name:  "escapes kept",
			input: `{"s": "line\nbreak \"q\""}`,
			want:  "{\n  \"s\": \"line\\nbreak \\\"q\\\"\"\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pretty(parse(t, tt.input), DefaultIndent))
		})
	}
}

func TestPrettyRoundTrip(t *testing.T) {
	input := `{"z": [1, 2.50, {"deep": [null, false]}], "a": "é", "n": NaN}`
	v := parse(t, input)

	out := Pretty(v, 4)
	again, err := loader.Parse("again", []byte(out), loader.FormatJSON)
	require.NoError(t, err)

	if diff := cmp.Diff(Compact(v), Compact(&again.Value)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, parse(t, `[1]`), -1))
	assert.Equal(t, "[\n  1\n]", buf.String())
}

func TestFormatYAML(t *testing.T) {
	v := parse(t, `{"zeta": 1, "alpha": [1.5, "true", null], "inf": -Infinity, "text": "a\nb"}`)

	got, err := FormatYAML(v, YAMLFormatOptions{LiteralBlockStrings: true})
	require.NoError(t, err)

	want := "zeta: 1\nalpha:\n  - 1.5\n  - \"true\"\n  - null\ninf: -.inf\ntext: |-\n  a\n  b\n"
	assert.Equal(t, want, got)
}

func TestFormatYAMLExpandEscapedNewlines(t *testing.T) {
	v := parse(t, `{"msg": "one\\ntwo"}`)
	got, err := FormatYAML(v, YAMLFormatOptions{ExpandEscapedNewlines: true, LiteralBlockStrings: true})
	require.NoError(t, err)
	assert.Equal(t, "msg: |-\n  one\n  two\n", got)
}
