package ident

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysReturnsTopLevelIdentifiers(t *testing.T) {
	data := []byte(`{
  "Scope_4x": {"slots": {"mount": "Mount_A"}},
  "Mag30": {"capacity": 30}
}`)

	keys, err := Keys("Scopes.json", data)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Scope_4x", "Mag30"}, keys)
}

func TestKeysRejectsNonObjectRoots(t *testing.T) {
	cases := map[string]string{
		"array":     `["Scope_4x"]`,
		"string":    `"Scope_4x"`,
		"malformed": `{"Scope_4x": `,
	}
	for name, src := range cases {
		_, err := Keys("Scopes.json", []byte(src))
		require.Error(t, err, name)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), name)
		assert.Equal(t, "Scopes.json", parseErr.Path)
	}
}

func TestReferencesIsCaseInsensitiveSubstring(t *testing.T) {
	blob := `{"weapon": {"slots": ["SCOPE_4X"]}}`
	assert.True(t, References(blob, "scope_4x"))
	assert.False(t, References(blob, "Scope_6x"))
}

// A shorter id that is a prefix of a longer one counts as referenced wherever
// the longer one appears. This over-matching is the documented behaviour.
func TestReferencesTreatsSubstringCollisionsAsReferenced(t *testing.T) {
	blob := `{"magazine": "Mag300"}`

	assert.True(t, NewText(blob, PolicySubstring).References("Mag30"))
	assert.True(t, NewText(blob, PolicySubstring).References("Mag300"))
}

func TestExactPolicyRequiresWholeStringToken(t *testing.T) {
	text := NewText(`{"magazine": "Mag300", "MAG30_ALT": 1}`, PolicyExact)

	assert.False(t, text.References("Mag30"))
	assert.True(t, text.References("mag300"))
	assert.True(t, text.References("mag30_alt"))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicySubstring, p)

	p, err = ParsePolicy(" EXACT ")
	require.NoError(t, err)
	assert.Equal(t, PolicyExact, p)

	_, err = ParsePolicy("fuzzy")
	assert.Error(t, err)
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny(`{"id":"abc"}`, []string{"zzz", "ABC"}))
	assert.False(t, ContainsAny(`{"id":"abc"}`, []string{"zzz"}))
	assert.False(t, ContainsAny(`{"id":"abc"}`, nil))
}
