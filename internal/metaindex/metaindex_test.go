package metaindex

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHelpDump(t *testing.T) {
	output := `
@:keep : Causes a field or type to be kept by DCE
@:noCompletion : Prevents the compiler from suggesting completion
 analyzer-optimize : Enable the analyzer optimizations

This line has no colon separator
`

	entries := ParseHelpDump(output)
	require.Len(t, entries, 3)

	assert.Equal(t, "Causes a field or type to be kept by DCE", entries[":keep"].Doc)
	assert.Equal(t, "Prevents the compiler from suggesting completion", entries[":noCompletion"].Doc)
	assert.Equal(t, "Enable the analyzer optimizations", entries["analyzer-optimize"].Doc)
}

func TestParseHelpDumpEmpty(t *testing.T) {
	assert.Empty(t, ParseHelpDump(""))
	assert.Empty(t, ParseHelpDump("no entries here\njust prose\n"))
}

func TestCanonicalMetadataName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "keep", expected: "keep"},
		{input: ":keep", expected: "keep"},
		{input: "@:keep", expected: "keep"},
		{input: "@keep", expected: "keep"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, canonicalMetadataName(tc.input))
		})
	}
}

func TestDocStoreRoundTrip(t *testing.T) {
	store, err := openDocStore[Entry](filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	defer func() { _ = store.close() }()

	err = store.replaceNamespace(nsMetadata, map[string]Entry{
		"keep": {Name: "keep", Doc: "Keeps things."},
	})
	require.NoError(t, err)

	entry, ok, err := store.get(nsMetadata, "keep")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Keeps things.", entry.Doc)

	_, ok, err = store.get(nsMetadata, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// Namespaces are isolated from each other.
	_, ok, err = store.get(nsDefine, "keep")
	require.NoError(t, err)
	assert.False(t, ok)

	// Replacing drops entries that are gone from the new set.
	err = store.replaceNamespace(nsMetadata, map[string]Entry{
		"noCompletion": {Name: "noCompletion", Doc: "Hides a field."},
	})
	require.NoError(t, err)

	_, ok, err = store.get(nsMetadata, "keep")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := store.count(nsMetadata)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIndexLookupSpellings(t *testing.T) {
	idx, err := New(filepath.Join(t.TempDir(), "docs.db"), "", zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()

	err = idx.store.replaceNamespace(nsMetadata, map[string]Entry{
		"keep": {Name: "keep", Doc: "Keeps things."},
	})
	require.NoError(t, err)

	for _, spelling := range []string{"keep", ":keep", "@:keep"} {
		doc, ok := idx.MetadataDoc(spelling)
		assert.True(t, ok, spelling)
		assert.Equal(t, "Keeps things.", doc)
	}

	_, ok := idx.DefineDoc("keep")
	assert.False(t, ok)
}
