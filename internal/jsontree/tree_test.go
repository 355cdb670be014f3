package jsontree

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncodeRoundTripKeepsOrderAndLiterals(t *testing.T) {
	src := `{"zeta":1.50,"alpha":{"id":"Mag30","tags":["a","b"],"empty":{},"none":[]},"ok":true,"nil":null,"html":"<b>&</b>"}`

	root, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "ok", "nil", "html"}, root.Keys())

	want := `{
  "zeta": 1.50,
  "alpha": {
    "id": "Mag30",
    "tags": [
      "a",
      "b"
    ],
    "empty": {},
    "none": []
  },
  "ok": true,
  "nil": null,
  "html": "<b>&</b>"
}
`
	assert.Equal(t, want, string(Encode(root, "  ")))

	again, err := Parse(Encode(root, "  "))
	require.NoError(t, err)
	assert.Equal(t, string(Encode(root, "  ")), string(Encode(again, "  ")))
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	cases := []string{
		``,
		`{"a":`,
		`{"a" 1}`,
		`{} {}`,
		`[1,]`,
	}
	for _, src := range cases {
		_, err := Parse([]byte(src))
		require.Error(t, err, "input %q", src)
		var syntaxErr *SyntaxError
		assert.True(t, errors.As(err, &syntaxErr), "input %q: expected SyntaxError, got %T", src, err)
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	src := []byte("{\"name\": \"ok\", \"label\": \"bad \xff byte\"}")

	_, err := Parse(src)
	require.Error(t, err)
	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, int64(strings.IndexByte(string(src), 0xff)), syntaxErr.Offset)
	assert.Contains(t, err.Error(), "invalid UTF-8")
}

func TestDetachRemovesArrayElementOnly(t *testing.T) {
	root, err := Parse([]byte(`{"rewards":[{"id":"A"},{"id":"B"}]}`))
	require.NoError(t, err)

	matches := FindStrings(root, func(s string) bool { return s == "A" })
	require.Len(t, matches, 1)

	record := matches[0].Parent()
	require.Equal(t, KindObject, record.Kind)
	assert.Equal(t, "$.rewards[0]", record.Path())
	require.True(t, record.Detach())

	rewards := root.Get("rewards")
	require.Len(t, rewards.Items, 1)
	assert.Equal(t, "B", rewards.Items[0].Get("id").Literal)
	assert.False(t, record.AttachedTo(root))
	assert.False(t, matches[0].AttachedTo(root))
}

func TestDetachRemovesOwningMember(t *testing.T) {
	root, err := Parse([]byte(`{"keep":1,"reward":{"id":"A"}}`))
	require.NoError(t, err)

	reward := root.Get("reward")
	require.True(t, reward.Detach())
	assert.Equal(t, []string{"keep"}, root.Keys())
}

func TestDetachRootIsRefused(t *testing.T) {
	root, err := Parse([]byte(`{"id":"A"}`))
	require.NoError(t, err)
	assert.False(t, root.Detach())
	assert.Nil(t, root.Parent())
}

func TestDeleteRemovesEveryDuplicateKey(t *testing.T) {
	root, err := Parse([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)

	assert.True(t, root.Delete("a"))
	assert.Equal(t, []string{"b"}, root.Keys())
	assert.False(t, root.Delete("a"))
}

func TestPathQuotesNonIdentifierKeys(t *testing.T) {
	root, err := Parse([]byte(`{"quest list":[[{"item id":"X"}]]}`))
	require.NoError(t, err)

	matches := FindStrings(root, func(s string) bool { return strings.EqualFold(s, "x") })
	require.Len(t, matches, 1)
	assert.Equal(t, `$["quest list"][0][0]["item id"]`, matches[0].Path())
}

func TestWalkCanSkipChildren(t *testing.T) {
	root, err := Parse([]byte(`{"skip":{"id":"A"},"scan":{"id":"A"}}`))
	require.NoError(t, err)

	var seen []string
	Walk(root, func(n *Node) bool {
		if key, ok := n.MemberKey(); ok && key == "skip" {
			return false
		}
		if n.Kind == KindString {
			seen = append(seen, n.Path())
		}
		return true
	})
	assert.Equal(t, []string{"$.scan.id"}, seen)
}
