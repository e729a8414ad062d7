package label

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/internal/search"
	"github.com/oakwood-commons/jview/pkg/loader"
)

func build(t *testing.T, name, input string) *document.Node {
	t.Helper()
	doc, err := loader.Parse(name, []byte(input), loader.FormatJSON)
	require.NoError(t, err)
	return document.NewForest(doc)[0]
}

func child(t *testing.T, n *document.Node, keys ...string) *document.Node {
	t.Helper()
	for _, k := range keys {
		c, ok := n.Child(k)
		require.True(t, ok, "missing child %q", k)
		n = c
	}
	return n
}

func TestContent(t *testing.T) {
	root := build(t, "data.json", `{
		"obj": {"x": 1},
		"objs": {"x": 1, "y": 2},
		"empty": {},
		"list": [1],
		"lists": [1, 2, 3],
		"str": "say \"hi\"\n\tnow\u0001",
		"t": true,
		"f": false,
		"num": 1.50,
		"big": 12345678901234,
		"nan": NaN,
		"nil": null
	}`)

	tests := []struct {
		key  string
		want string
	}{
		{"obj", "obj (dictionary, 1 key)"},
		{"objs", "objs (dictionary, 2 keys)"},
		{"empty", "empty (dictionary, 0 keys)"},
		{"list", "list (list, 1 item)"},
		{"lists", "lists (list, 3 items)"},
		{"str", `str: "say \"hi\"\n\tnow\u0001"`},
		{"t", "t: true"},
		{"f", "f: false"},
		{"num", "num: 1.5"},
		{"big", "big: 12345678901234"},
		{"nan", "nan: NaN"},
		{"nil", "nil: null"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Content(child(t, root, tt.key), nil, 80))
		})
	}
}

func TestRootContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sizes Sizes
		want  string
	}{
		{name: "object", input: `{"a": 1, "b": 2}`, want: "f.json (📦 dictionary, 2 keys)"},
		{name: "single key", input: `{"a": 1}`, want: "f.json (📦 dictionary, 1 key)"},
		{name: "list", input: `[1]`, want: "f.json (🗂️ list, 1 item)"},
		{name: "string", input: `"s"`, want: "f.json (℀ string)"},
		{name: "number", input: `3`, want: "f.json (⅑ number)"},
		{name: "bool", input: `false`, want: "f.json (☒ boolean)"},
		{name: "null", input: `null`, want: "f.json (⊘ null)"},
		{name: "with size", input: `[]`, sizes: Sizes{"f.json": 2048}, want: "f.json (🗂️ list, 0 items, 2.0 KB)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := build(t, "f.json", tt.input)
			assert.Equal(t, tt.want, Content(root, tt.sizes, 80))
		})
	}
}

func TestRootContentShortensPath(t *testing.T) {
	root := build(t, "/very/long/directory/structure/that/goes/on/data.json", `{}`)
	got := Content(root, nil, 50)
	assert.True(t, strings.HasSuffix(got, "/data.json (📦 dictionary, 0 keys)"), got)
	assert.Contains(t, got, "...")
}

func TestWithSearch(t *testing.T) {
	var arena loader.Arena
	for _, in := range []struct{ name, body string }{
		{"one.json", `{"id": 1, "list": [{"id": 2}]}`},
		{"two.json", `{"name": "x"}`},
		{"three.json", `{"id": 3}`},
	} {
		doc, err := loader.Parse(in.name, []byte(in.body), loader.FormatJSON)
		require.NoError(t, err)
		arena.Add(doc)
	}
	f := document.NewForest(arena.Documents()...)
	state := search.New(f, "id", true, false)

	assert.Equal(t, "one.json (📦 dictionary, 2 keys, 🔍 2 matches)", WithSearch(f[0], state, nil, 80))
	assert.Equal(t, "two.json (📦 dictionary, 1 key)", WithSearch(f[1], state, nil, 80))
	assert.Equal(t, "three.json (📦 dictionary, 1 key, 🔍 1 match)", WithSearch(f[2], state, nil, 80))
	assert.Equal(t, "id: 1", WithSearch(f[0].Children[0], state, nil, 80), "non-roots are unchanged")
	assert.Equal(t, "two.json (📦 dictionary, 1 key)", WithSearch(f[1], nil, nil, 80))
}

func TestShortenPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		want     string
	}{
		{name: "fits", path: "a/b.json", maxWidth: 20, want: "a/b.json"},
		{name: "no slash", path: "abcdefghijklmnop", maxWidth: 10, want: "abcdefg..."},
		{name: "long filename", path: "dir/averyveryverylongfilename.json", maxWidth: 15, want: ".../averyver..."},
		{name: "elided directory", path: "/home/user/projects/deep/nested/file.json", maxWidth: 30, want: "/home/...deep/nested/file.json"},
		{name: "no gain", path: "abcde/x", maxWidth: 6, want: "abcde/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortenPath(tt.path, tt.maxWidth))
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{10 * 1024, "10 KB"},
		{15*1024 + 600, "16 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
		{2048 * 1024 * 1024 * 1024 * 1024, "2048 TB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileSize(tt.size))
		})
	}
}

func TestSplitKeyValue(t *testing.T) {
	tests := []struct {
		content, key string
		wantKey      string
		wantValue    string
		wantOK       bool
	}{
		{content: `name: "a: b"`, key: "name", wantKey: "name", wantValue: `"a: b"`, wantOK: true},
		{content: `a: b: "c"`, key: "a: b", wantKey: "a: b", wantValue: `"c"`, wantOK: true},
		{content: `a\nb: 1`, key: "a\nb", wantKey: `a\nb`, wantValue: "1", wantOK: true},
		{content: "list (list, 2 items)", key: "list", wantKey: "list (list, 2 items)"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			k, v, ok := SplitKeyValue(tt.content, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, k)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestContentEscapesKeys(t *testing.T) {
	root := build(t, "a.json", `{"a\nb": 1, "q\"\\": {"x": 1}, "t\tab": "v\n"}`)
	assert.Equal(t, `a\nb: 1`, Content(root.Children[0], nil, 80))
	assert.Equal(t, `q"\ (dictionary, 1 key)`, Content(root.Children[1], nil, 80))
	assert.Equal(t, `t\tab: "v\n"`, Content(root.Children[2], nil, 80))
	for _, c := range root.Children {
		assert.NotContains(t, Content(c, nil, 80), "\n", "raw newline in %q", c.Key)
	}
}

func TestEscapeKey(t *testing.T) {
	assert.Equal(t, `a"b\c`, EscapeKey(`a"b\c`))
	assert.Equal(t, `a\nb\u0001`, EscapeKey("a\nb\x01"))
	assert.Equal(t, `a\"b\\c`, Escape(`a"b\c`))
}
