// Package haxe implements the bridge to the Haxe compiler's display
// service: the process client, the capability table, and the types and
// printers for the structured display protocol.
package haxe

import (
	"encoding/json"

	"github.com/hxkit/haxe-lsp/internal/lsp/protocol"
	"gitlab.com/tozd/go/errors"
)

// MethodDisplayHover is the structured hover method of the display protocol.
const MethodDisplayHover = "display/hover"

// HoverRequestArgs are the arguments of a structured hover call.
type HoverRequestArgs struct {
	File     string `json:"file"`
	Contents string `json:"contents"`
	Offset   int    `json:"offset"`
}

// DisplayItemKind tags the variant of a display item.
type DisplayItemKind string

const (
	ItemType              DisplayItemKind = "Type"
	ItemLocal             DisplayItemKind = "Local"
	ItemClassField        DisplayItemKind = "ClassField"
	ItemEnumAbstractField DisplayItemKind = "EnumAbstractField"
	ItemEnumField         DisplayItemKind = "EnumField"
	ItemMetadata          DisplayItemKind = "Metadata"
	ItemDefine            DisplayItemKind = "Define"
	ItemLiteral           DisplayItemKind = "Literal"
)

// DisplayItem is the compiler's description of the construct found at an
// offset. Only the kind tag and the resolved type are decoded eagerly;
// the kind-specific arguments stay raw until the matching accessor is
// called, so a variant's fields can never be read under the wrong tag.
type DisplayItem struct {
	Kind DisplayItemKind `json:"kind"`
	Args json.RawMessage `json:"args,omitempty"`
	Type *JsonType       `json:"type,omitempty"`
}

// HoverOccurrence is the result of a structured hover call.
type HoverOccurrence struct {
	Item     DisplayItem       `json:"item"`
	Range    *protocol.Range   `json:"range,omitempty"`
	Expected *ExpectedTypeInfo `json:"expected,omitempty"`
}

// ExpectedTypeInfo describes the type context the hovered expression
// appears in, e.g. the declared type of a call argument.
type ExpectedTypeInfo struct {
	Type *JsonType     `json:"type,omitempty"`
	Name *ExpectedName `json:"name,omitempty"`
}

// ExpectedNameKind says where the expected name comes from.
type ExpectedNameKind int

const (
	ExpectedFunctionArgument ExpectedNameKind = 0
	ExpectedStructureField   ExpectedNameKind = 1
)

// ExpectedName names the slot the hovered expression fills.
type ExpectedName struct {
	Name string           `json:"name"`
	Kind ExpectedNameKind `json:"kind"`
}

// ModuleTypeItem is the argument payload of a Type item.
type ModuleTypeItem struct {
	Path   JsonTypePath        `json:"path"`
	Params []JsonTypeParameter `json:"params,omitempty"`
	Kind   string              `json:"kind,omitempty"`
	Doc    string              `json:"doc,omitempty"`
}

// LocalOrigin says how a local came into scope.
type LocalOrigin int

const (
	OriginLocalVariable   LocalOrigin = 0
	OriginArgument        LocalOrigin = 1
	OriginForVariable     LocalOrigin = 2
	OriginPatternVariable LocalOrigin = 3
	OriginCatchVariable   LocalOrigin = 4
	OriginLocalFunction   LocalOrigin = 5
)

// LocalItem is the argument payload of a Local item.
type LocalItem struct {
	Name    string      `json:"name"`
	Type    *JsonType   `json:"type,omitempty"`
	Origin  LocalOrigin `json:"origin"`
	Capture bool        `json:"capture,omitempty"`
}

// ClassFieldOriginKind says which type a class field was resolved on.
type ClassFieldOriginKind int

const (
	FieldOriginSelf               ClassFieldOriginKind = 0
	FieldOriginStaticImport       ClassFieldOriginKind = 1
	FieldOriginParent             ClassFieldOriginKind = 2
	FieldOriginStaticExtension    ClassFieldOriginKind = 3
	FieldOriginAnonymousStructure ClassFieldOriginKind = 4
	FieldOriginBuiltIn            ClassFieldOriginKind = 5
	FieldOriginUnknown            ClassFieldOriginKind = 6
)

// ClassFieldOrigin carries the declaring type of a field, when known.
type ClassFieldOrigin struct {
	Kind ClassFieldOriginKind `json:"kind"`
	Args *ModuleTypeItem      `json:"args,omitempty"`
}

// JsonClassField mirrors the compiler's class field representation.
type JsonClassField struct {
	Name     string          `json:"name"`
	Type     *JsonType       `json:"type,omitempty"`
	IsPublic bool            `json:"isPublic,omitempty"`
	IsFinal  bool            `json:"isFinal,omitempty"`
	Kind     *ClassFieldKind `json:"kind,omitempty"`
	Doc      string          `json:"doc,omitempty"`
}

// ClassFieldKind distinguishes variables from methods.
type ClassFieldKind struct {
	Kind string `json:"kind"` // FVar or FMethod
}

// ClassFieldItem is the argument payload of a ClassField or
// EnumAbstractField item.
type ClassFieldItem struct {
	Field  JsonClassField    `json:"field"`
	Origin *ClassFieldOrigin `json:"origin,omitempty"`
}

// JsonEnumField mirrors the compiler's enum constructor representation.
type JsonEnumField struct {
	Name string    `json:"name"`
	Type *JsonType `json:"type,omitempty"`
	Doc  string    `json:"doc,omitempty"`
}

// EnumFieldItem is the argument payload of an EnumField item.
type EnumFieldItem struct {
	Field  JsonEnumField     `json:"field"`
	Origin *ClassFieldOrigin `json:"origin,omitempty"`
}

// MetadataItem is the argument payload of a Metadata item.
type MetadataItem struct {
	Name string `json:"name"`
	Doc  string `json:"doc,omitempty"`
}

// DefineItem is the argument payload of a Define item. A nil value means
// the flag is known to the compiler but not set.
type DefineItem struct {
	Name  string  `json:"name"`
	Value *string `json:"value,omitempty"`
	Doc   string  `json:"doc,omitempty"`
}

// LiteralItem is the argument payload of a Literal item.
type LiteralItem struct {
	Name string `json:"name"`
}

func decodeArgs[T any](item *DisplayItem, want DisplayItemKind) (*T, error) {
	if item.Kind != want {
		return nil, errors.Errorf("display item is %s, not %s", item.Kind, want)
	}
	var out T
	if err := json.Unmarshal(item.Args, &out); err != nil {
		return nil, errors.Errorf("decoding %s args: %w", want, err)
	}
	return &out, nil
}

// ModuleType decodes the Type variant's arguments.
func (i *DisplayItem) ModuleType() (*ModuleTypeItem, error) {
	return decodeArgs[ModuleTypeItem](i, ItemType)
}

// Local decodes the Local variant's arguments.
func (i *DisplayItem) Local() (*LocalItem, error) {
	return decodeArgs[LocalItem](i, ItemLocal)
}

// ClassField decodes the ClassField or EnumAbstractField variant's arguments.
func (i *DisplayItem) ClassField() (*ClassFieldItem, error) {
	if i.Kind == ItemEnumAbstractField {
		return decodeArgs[ClassFieldItem](i, ItemEnumAbstractField)
	}
	return decodeArgs[ClassFieldItem](i, ItemClassField)
}

// EnumField decodes the EnumField variant's arguments.
func (i *DisplayItem) EnumField() (*EnumFieldItem, error) {
	return decodeArgs[EnumFieldItem](i, ItemEnumField)
}

// Metadata decodes the Metadata variant's arguments.
func (i *DisplayItem) Metadata() (*MetadataItem, error) {
	return decodeArgs[MetadataItem](i, ItemMetadata)
}

// Define decodes the Define variant's arguments.
func (i *DisplayItem) Define() (*DefineItem, error) {
	return decodeArgs[DefineItem](i, ItemDefine)
}

// Literal decodes the Literal variant's arguments.
func (i *DisplayItem) Literal() (*LiteralItem, error) {
	return decodeArgs[LiteralItem](i, ItemLiteral)
}

// Documentation returns the doc comment attached to the item, if any.
func (i *DisplayItem) Documentation() string {
	switch i.Kind {
	case ItemType:
		if args, err := i.ModuleType(); err == nil {
			return args.Doc
		}
	case ItemClassField, ItemEnumAbstractField:
		if args, err := i.ClassField(); err == nil {
			return args.Field.Doc
		}
	case ItemEnumField:
		if args, err := i.EnumField(); err == nil {
			return args.Field.Doc
		}
	case ItemMetadata:
		if args, err := i.Metadata(); err == nil {
			return args.Doc
		}
	case ItemDefine:
		if args, err := i.Define(); err == nil {
			return args.Doc
		}
	}
	return ""
}
