package hover

import (
	"testing"

	"github.com/hxkit/haxe-lsp/internal/lsp/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	testCases := []struct {
		name          string
		contents      HoverContents
		documentation string
		expected      string
	}{
		{
			name:          "definition only",
			contents:      HoverContents{Definition: "```haxe\nvar x:Int\n```"},
			documentation: "",
			expected:      "```haxe\nvar x:Int\n```",
		},
		{
			name:          "definition with documentation",
			contents:      HoverContents{Definition: "```haxe\nvar x:Int\n```"},
			documentation: "The variable x.",
			expected:      "```haxe\nvar x:Int\n```\n---\n\nThe variable x.",
		},
		{
			name:          "origin without documentation",
			contents:      HoverContents{Definition: "```haxe\npublic function f():Void\n```", Origin: "Foo"},
			documentation: "",
			expected:      "```haxe\npublic function f():Void\n```\n---\n*Foo*\n",
		},
		{
			name:          "origin with documentation",
			contents:      HoverContents{Definition: "```haxe\npublic function f():Void\n```", Origin: "Foo"},
			documentation: "Does a thing.",
			expected:      "```haxe\npublic function f():Void\n```\n---\n*Foo*\n\nDoes a thing.",
		},
		{
			name: "additional sections come last",
			contents: HoverContents{
				Definition:         "```haxe\n\"hi\"\n```",
				AdditionalSections: []string{"*for argument `msg:String`*"},
			},
			documentation: "",
			expected:      "```haxe\n\"hi\"\n```\n---\n*for argument `msg:String`*",
		},
		{
			name:          "whitespace-only documentation is dropped",
			contents:      HoverContents{Definition: "```haxe\nvar x:Int\n```"},
			documentation: "   \n\t  ",
			expected:      "```haxe\nvar x:Int\n```",
		},
		{
			name:          "documentation star prefixes are stripped",
			contents:      HoverContents{Definition: "```haxe\nvar x:Int\n```"},
			documentation: "*\n * First line.\n * Second line.\n ",
			expected:      "```haxe\nvar x:Int\n```\n---\n\nFirst line.\nSecond line.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hover := Compose(tc.contents, tc.documentation, nil)
			require.NotNil(t, hover)
			assert.Equal(t, protocol.Markdown, hover.Contents.Kind)
			assert.Equal(t, tc.expected, hover.Contents.Value)
			assert.Nil(t, hover.Range)
		})
	}
}

func TestComposeCopiesRange(t *testing.T) {
	rng := &protocol.Range{
		Start: protocol.Position{Line: 1, Character: 2},
		End:   protocol.Position{Line: 1, Character: 7},
	}
	hover := Compose(HoverContents{Definition: "x"}, "", rng)
	require.NotNil(t, hover.Range)
	assert.Equal(t, *rng, *hover.Range)

	// The hover must not alias the caller's range.
	rng.End.Character = 99
	assert.Equal(t, 7, hover.Range.End.Character)
}
