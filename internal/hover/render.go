package hover

import (
	"fmt"
	"strings"

	"github.com/hxkit/haxe-lsp/internal/haxe"
)

// Code block languages used in hover markdown. Clients apply different
// highlighting to argument annotations than to regular code, so the
// distinction has to survive rendering.
const (
	languageHaxe         = "haxe"
	languageHaxeType     = "haxe.type"
	languageHaxeArgument = "haxe.argument"
)

// HoverContents is the rendered form of a display item before final
// markdown assembly: a definition code block, an optional provenance
// label and optional extra markdown sections.
type HoverContents struct {
	Definition         string
	Origin             string
	AdditionalSections []string
}

func codeBlock(code string, language string) string {
	return "```" + language + "\n" + code + "\n```"
}

// render converts a display item occurrence into hover contents.
// rangeText is the exact source text covered by the occurrence's range,
// empty when the compiler reported no range.
func render(occ *haxe.HoverOccurrence, rangeText string) HoverContents {
	contents := renderItem(occ, rangeText)

	if exp := occ.Expected; exp != nil && exp.Name != nil && exp.Name.Kind == haxe.ExpectedFunctionArgument {
		label := exp.Name.Name
		if exp.Type != nil {
			label += ":" + haxe.PrintType(exp.Type)
		}
		contents.AdditionalSections = append(contents.AdditionalSections,
			fmt.Sprintf("*for argument `%s`*", label))
	}

	return contents
}

func renderItem(occ *haxe.HoverOccurrence, rangeText string) HoverContents {
	item := &occ.Item

	switch item.Kind {
	case haxe.ItemType:
		args, err := item.ModuleType()
		if err != nil {
			break
		}
		return HoverContents{
			Definition: codeBlock(haxe.PrintEmptyTypeDefinition(args), languageHaxeType),
		}

	case haxe.ItemLocal:
		args, err := item.Local()
		if err != nil {
			break
		}
		language := languageHaxe
		if args.Origin == haxe.OriginArgument {
			language = languageHaxeArgument
		}
		return HoverContents{
			Definition: codeBlock(haxe.PrintLocalDefinition(args), language),
			Origin:     haxe.PrintLocalOrigin(args),
		}

	case haxe.ItemClassField, haxe.ItemEnumAbstractField:
		args, err := item.ClassField()
		if err != nil {
			break
		}
		origin, _ := haxe.PrintClassFieldOrigin(args.Origin)
		return HoverContents{
			Definition: codeBlock(haxe.PrintClassFieldDefinition(&args.Field), languageHaxe),
			Origin:     origin,
		}

	case haxe.ItemEnumField:
		args, err := item.EnumField()
		if err != nil {
			break
		}
		origin, _ := haxe.PrintClassFieldOrigin(args.Origin)
		return HoverContents{
			Definition: codeBlock(haxe.PrintEnumFieldDefinition(&args.Field), languageHaxe),
			Origin:     origin,
		}

	case haxe.ItemMetadata:
		args, err := item.Metadata()
		if err != nil {
			break
		}
		name := args.Name
		// Older compilers leave out the marker character.
		if !strings.HasPrefix(name, "@") {
			name = "@" + name
		}
		return HoverContents{
			Definition: codeBlock(name, languageHaxe),
		}

	case haxe.ItemDefine:
		args, err := item.Define()
		if err != nil {
			break
		}
		value := "not defined"
		if args.Value != nil {
			value = fmt.Sprintf("%q", *args.Value)
		}
		return HoverContents{
			Definition: codeBlock(value, languageHaxe),
		}

	case haxe.ItemLiteral:
		args, err := item.Literal()
		if err != nil {
			break
		}
		if args.Name != rangeText && !item.Type.IsString() {
			return HoverContents{
				Definition: codeBlock(args.Name, languageHaxe),
			}
		}
	}

	// Every remaining kind renders as its resolved type.
	return HoverContents{
		Definition: codeBlock(haxe.PrintType(item.Type), languageHaxeType),
	}
}
