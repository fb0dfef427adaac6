package haxe

import (
	"encoding/json"
	"strings"
)

// unknownType is rendered wherever the compiler gave us no usable type.
const unknownType = "unknown"

// PrintType renders a serialized type in Haxe surface syntax. The model
// carries no alias expansion, so typedef paths always print as written.
func PrintType(t *JsonType) string {
	if t == nil {
		return unknownType
	}
	switch t.Kind {
	case TypeDynamic:
		return "Dynamic"
	case TypeMono:
		return unknownType
	case TypeFun:
		sig, ok := t.FunctionSignature()
		if !ok {
			return unknownType
		}
		return printArrowSignature(sig)
	case TypeAnon:
		return printAnon(t)
	default:
		pp, ok := t.PathWithParams()
		if !ok {
			return unknownType
		}
		name := pp.Path.QualifiedName()
		if len(pp.Params) == 0 {
			return name
		}
		params := make([]string, len(pp.Params))
		for i := range pp.Params {
			params[i] = PrintType(&pp.Params[i])
		}
		return name + "<" + strings.Join(params, ", ") + ">"
	}
}

func printAnon(t *JsonType) string {
	var fields JsonAnonFields
	if err := json.Unmarshal(t.Args, &fields); err != nil || len(fields.Fields) == 0 {
		return "{}"
	}
	parts := make([]string, len(fields.Fields))
	for i, f := range fields.Fields {
		parts[i] = f.Name + ":" + PrintType(f.Type)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// printArrowSignature renders a function type as a standalone type
// expression, e.g. (a:Int, b:String) -> Void.
func printArrowSignature(sig *JsonFunctionSignature) string {
	if len(sig.Args) == 0 {
		return "() -> " + PrintType(sig.Ret)
	}
	args := make([]string, len(sig.Args))
	for i, arg := range sig.Args {
		args[i] = printFunctionArgument(arg)
	}
	return "(" + strings.Join(args, ", ") + ") -> " + PrintType(sig.Ret)
}

func printFunctionArgument(arg JsonFunctionArgument) string {
	s := ""
	if arg.Opt {
		s += "?"
	}
	if arg.Name != "" {
		s += arg.Name + ":"
	}
	return s + PrintType(arg.T)
}

// printCallSignature renders a function type as a declaration suffix,
// e.g. (a:Int, b:String):Void.
func printCallSignature(sig *JsonFunctionSignature) string {
	args := make([]string, len(sig.Args))
	for i, arg := range sig.Args {
		args[i] = printFunctionArgument(arg)
	}
	return "(" + strings.Join(args, ", ") + "):" + PrintType(sig.Ret)
}

// PrintEmptyTypeDefinition renders a type declaration head without its
// body, e.g. class Map<K, V>.
func PrintEmptyTypeDefinition(mt *ModuleTypeItem) string {
	keyword := mt.Kind
	if keyword == "" {
		keyword = "type"
	}
	def := keyword + " " + mt.Path.QualifiedName()
	if len(mt.Params) > 0 {
		names := make([]string, len(mt.Params))
		for i, p := range mt.Params {
			names[i] = p.Name
		}
		def += "<" + strings.Join(names, ", ") + ">"
	}
	return def
}

// PrintLocalDefinition renders the declaration of a local as the editor
// shows it. Arguments render as a bare annotation, local functions as a
// function head, everything else as a var declaration.
func PrintLocalDefinition(local *LocalItem) string {
	if local.Origin == OriginLocalFunction {
		if sig, ok := functionSignatureOf(local.Type); ok {
			return "function " + local.Name + printCallSignature(sig)
		}
	}
	if local.Origin == OriginArgument {
		return local.Name + ":" + PrintType(local.Type)
	}
	return "var " + local.Name + ":" + PrintType(local.Type)
}

// PrintLocalOrigin renders the human-readable provenance of a local.
func PrintLocalOrigin(local *LocalItem) string {
	if local.Capture {
		return "captured variable"
	}
	switch local.Origin {
	case OriginArgument:
		return "argument"
	case OriginForVariable:
		return "for variable"
	case OriginPatternVariable:
		return "pattern variable"
	case OriginCatchVariable:
		return "catch variable"
	case OriginLocalFunction:
		return "local function"
	default:
		return "local variable"
	}
}

// PrintClassFieldDefinition renders a field with its visibility, kind
// and modifiers.
func PrintClassFieldDefinition(field *JsonClassField) string {
	var parts []string
	if field.IsPublic {
		parts = append(parts, "public")
	}
	if field.IsFinal {
		parts = append(parts, "final")
	}

	if field.Kind != nil && field.Kind.Kind == "FMethod" {
		if sig, ok := functionSignatureOf(field.Type); ok {
			parts = append(parts, "function "+field.Name+printCallSignature(sig))
			return strings.Join(parts, " ")
		}
	}
	if !field.IsFinal {
		parts = append(parts, "var "+field.Name+":"+PrintType(field.Type))
	} else {
		parts = append(parts, field.Name+":"+PrintType(field.Type))
	}
	return strings.Join(parts, " ")
}

// PrintEnumFieldDefinition renders an enum constructor. Constructors
// with arguments render with their call signature, plain ones with
// their name only.
func PrintEnumFieldDefinition(field *JsonEnumField) string {
	if sig, ok := functionSignatureOf(field.Type); ok {
		args := make([]string, len(sig.Args))
		for i, arg := range sig.Args {
			args[i] = printFunctionArgument(arg)
		}
		return field.Name + "(" + strings.Join(args, ", ") + ")"
	}
	return field.Name
}

// PrintClassFieldOrigin renders the declaring type of a field, or ok =
// false when the origin is unknown or synthesized.
func PrintClassFieldOrigin(origin *ClassFieldOrigin) (string, bool) {
	if origin == nil {
		return "", false
	}
	switch origin.Kind {
	case FieldOriginBuiltIn, FieldOriginUnknown:
		return "", false
	case FieldOriginAnonymousStructure:
		return "anonymous structure", true
	}
	if origin.Args == nil {
		return "", false
	}
	return origin.Args.Path.QualifiedName(), true
}

func functionSignatureOf(t *JsonType) (*JsonFunctionSignature, bool) {
	if t == nil {
		return nil, false
	}
	return t.FunctionSignature()
}
