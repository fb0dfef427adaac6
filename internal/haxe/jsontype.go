package haxe

import (
	"encoding/json"
	"strings"
)

// JsonType is the compiler's serialized type representation. Like
// DisplayItem it is a tagged union: Args is decoded according to Kind.
type JsonType struct {
	Kind string          `json:"kind"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Type kinds of the display protocol.
const (
	TypeInst     = "TInst"
	TypeEnum     = "TEnum"
	TypeTypedef  = "TType"
	TypeAbstract = "TAbstract"
	TypeFun      = "TFun"
	TypeAnon     = "TAnon"
	TypeDynamic  = "TDynamic"
	TypeMono     = "TMono"
)

// JsonTypePath names a type by package and type name.
type JsonTypePath struct {
	Pack       []string `json:"pack"`
	ModuleName string   `json:"moduleName,omitempty"`
	TypeName   string   `json:"typeName"`
}

// QualifiedName renders the dotted path of the type.
func (p JsonTypePath) QualifiedName() string {
	if len(p.Pack) == 0 {
		return p.TypeName
	}
	return strings.Join(p.Pack, ".") + "." + p.TypeName
}

// JsonTypeParameter is a declared type parameter of a type.
type JsonTypeParameter struct {
	Name string `json:"name"`
}

// JsonTypePathWithParams is the argument payload of the nominal type
// kinds (TInst, TEnum, TType, TAbstract).
type JsonTypePathWithParams struct {
	Path   JsonTypePath `json:"path"`
	Params []JsonType   `json:"params,omitempty"`
}

// JsonFunctionArgument is one argument of a function type.
type JsonFunctionArgument struct {
	Name string    `json:"name"`
	Opt  bool      `json:"opt,omitempty"`
	T    *JsonType `json:"t,omitempty"`
}

// JsonFunctionSignature is the argument payload of TFun.
type JsonFunctionSignature struct {
	Args []JsonFunctionArgument `json:"args"`
	Ret  *JsonType              `json:"ret,omitempty"`
}

// JsonAnonFields is the argument payload of TAnon.
type JsonAnonFields struct {
	Fields []JsonClassField `json:"fields,omitempty"`
}

// PathWithParams decodes the nominal payload of the type.
func (t *JsonType) PathWithParams() (*JsonTypePathWithParams, bool) {
	switch t.Kind {
	case TypeInst, TypeEnum, TypeTypedef, TypeAbstract:
	default:
		return nil, false
	}
	var out JsonTypePathWithParams
	if err := json.Unmarshal(t.Args, &out); err != nil {
		return nil, false
	}
	return &out, true
}

// FunctionSignature decodes the TFun payload of the type.
func (t *JsonType) FunctionSignature() (*JsonFunctionSignature, bool) {
	if t.Kind != TypeFun {
		return nil, false
	}
	var out JsonFunctionSignature
	if err := json.Unmarshal(t.Args, &out); err != nil {
		return nil, false
	}
	return &out, true
}

// IsString reports whether the type is the built-in String type.
func (t *JsonType) IsString() bool {
	if t == nil {
		return false
	}
	pp, ok := t.PathWithParams()
	return ok && len(pp.Path.Pack) == 0 && pp.Path.TypeName == "String"
}
