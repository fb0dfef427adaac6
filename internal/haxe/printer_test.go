package haxe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nominal(kind string, pack []string, name string, params ...JsonType) *JsonType {
	pp := JsonTypePathWithParams{
		Path:   JsonTypePath{Pack: pack, TypeName: name},
		Params: params,
	}
	return &JsonType{Kind: kind, Args: mustMarshal(pp)}
}

func fun(ret *JsonType, args ...JsonFunctionArgument) *JsonType {
	sig := JsonFunctionSignature{Args: args, Ret: ret}
	return &JsonType{Kind: TypeFun, Args: mustMarshal(sig)}
}

func TestPrintType(t *testing.T) {
	intType := nominal(TypeAbstract, nil, "Int")
	voidType := nominal(TypeAbstract, nil, "Void")

	testCases := []struct {
		name     string
		input    *JsonType
		expected string
	}{
		{name: "nil type", input: nil, expected: "unknown"},
		{name: "monomorph", input: &JsonType{Kind: TypeMono}, expected: "unknown"},
		{name: "dynamic", input: &JsonType{Kind: TypeDynamic}, expected: "Dynamic"},
		{name: "top-level type", input: intType, expected: "Int"},
		{
			name:     "packaged type",
			input:    nominal(TypeInst, []string{"haxe", "io"}, "Bytes"),
			expected: "haxe.io.Bytes",
		},
		{
			name:     "type with parameters",
			input:    nominal(TypeInst, nil, "Array", *intType),
			expected: "Array<Int>",
		},
		{
			name:     "nested parameters",
			input:    nominal(TypeInst, nil, "Map", *nominal(TypeInst, nil, "String"), *nominal(TypeInst, nil, "Array", *intType)),
			expected: "Map<String, Array<Int>>",
		},
		{
			name:     "function without arguments",
			input:    fun(voidType),
			expected: "() -> Void",
		},
		{
			name:     "function with arguments",
			input:    fun(intType, JsonFunctionArgument{Name: "a", T: intType}, JsonFunctionArgument{Name: "b", Opt: true, T: intType}),
			expected: "(a:Int, ?b:Int) -> Int",
		},
		{
			name:     "unnamed function argument",
			input:    fun(voidType, JsonFunctionArgument{T: intType}),
			expected: "(Int) -> Void",
		},
		{
			name: "anonymous structure",
			input: &JsonType{
				Kind: TypeAnon,
				Args: []byte(`{"fields":[{"name":"x","type":{"kind":"TAbstract","args":{"path":{"pack":[],"typeName":"Int"}}},"kind":{"kind":"FVar"}}]}`),
			},
			expected: "{ x:Int }",
		},
		{
			name:     "nominal with broken args",
			input:    &JsonType{Kind: TypeInst, Args: []byte(`oops`)},
			expected: "unknown",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PrintType(tc.input))
		})
	}
}

func TestPrintEmptyTypeDefinition(t *testing.T) {
	testCases := []struct {
		name     string
		item     ModuleTypeItem
		expected string
	}{
		{
			name: "class with parameters",
			item: ModuleTypeItem{
				Path:   JsonTypePath{Pack: []string{"haxe", "ds"}, TypeName: "BalancedTree"},
				Params: []JsonTypeParameter{{Name: "K"}, {Name: "V"}},
				Kind:   "class",
			},
			expected: "class haxe.ds.BalancedTree<K, V>",
		},
		{
			name: "plain enum",
			item: ModuleTypeItem{
				Path: JsonTypePath{TypeName: "Option"},
				Kind: "enum",
			},
			expected: "enum Option",
		},
		{
			name: "missing kind",
			item: ModuleTypeItem{
				Path: JsonTypePath{TypeName: "Thing"},
			},
			expected: "type Thing",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PrintEmptyTypeDefinition(&tc.item))
		})
	}
}

func TestPrintLocalDefinition(t *testing.T) {
	intType := nominal(TypeAbstract, nil, "Int")

	testCases := []struct {
		name     string
		local    LocalItem
		expected string
	}{
		{
			name:     "local variable",
			local:    LocalItem{Name: "x", Type: intType, Origin: OriginLocalVariable},
			expected: "var x:Int",
		},
		{
			name:     "argument",
			local:    LocalItem{Name: "x", Type: intType, Origin: OriginArgument},
			expected: "x:Int",
		},
		{
			name:     "local function",
			local:    LocalItem{Name: "add", Type: fun(intType, JsonFunctionArgument{Name: "a", T: intType}), Origin: OriginLocalFunction},
			expected: "function add(a:Int):Int",
		},
		{
			name:     "for variable",
			local:    LocalItem{Name: "i", Type: intType, Origin: OriginForVariable},
			expected: "var i:Int",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PrintLocalDefinition(&tc.local))
		})
	}
}

func TestPrintLocalOrigin(t *testing.T) {
	assert.Equal(t, "local variable", PrintLocalOrigin(&LocalItem{Origin: OriginLocalVariable}))
	assert.Equal(t, "argument", PrintLocalOrigin(&LocalItem{Origin: OriginArgument}))
	assert.Equal(t, "pattern variable", PrintLocalOrigin(&LocalItem{Origin: OriginPatternVariable}))
	// Capture wins over the origin label.
	assert.Equal(t, "captured variable", PrintLocalOrigin(&LocalItem{Origin: OriginArgument, Capture: true}))
}

func TestPrintClassFieldDefinition(t *testing.T) {
	intType := nominal(TypeAbstract, nil, "Int")

	testCases := []struct {
		name     string
		field    JsonClassField
		expected string
	}{
		{
			name:     "private var",
			field:    JsonClassField{Name: "count", Type: intType},
			expected: "var count:Int",
		},
		{
			name:     "public final",
			field:    JsonClassField{Name: "MAX", Type: intType, IsPublic: true, IsFinal: true},
			expected: "public final MAX:Int",
		},
		{
			name: "public method",
			field: JsonClassField{
				Name:     "inc",
				Type:     fun(intType, JsonFunctionArgument{Name: "by", Opt: true, T: intType}),
				IsPublic: true,
				Kind:     &ClassFieldKind{Kind: "FMethod"},
			},
			expected: "public function inc(?by:Int):Int",
		},
		{
			name: "method without a function type renders as var",
			field: JsonClassField{
				Name: "weird",
				Type: intType,
				Kind: &ClassFieldKind{Kind: "FMethod"},
			},
			expected: "var weird:Int",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PrintClassFieldDefinition(&tc.field))
		})
	}
}

func TestPrintEnumFieldDefinition(t *testing.T) {
	intType := nominal(TypeAbstract, nil, "Int")
	option := nominal(TypeEnum, nil, "Option")

	plain := JsonEnumField{Name: "None", Type: option}
	assert.Equal(t, "None", PrintEnumFieldDefinition(&plain))

	ctor := JsonEnumField{Name: "Some", Type: fun(option, JsonFunctionArgument{Name: "v", T: intType})}
	assert.Equal(t, "Some(v:Int)", PrintEnumFieldDefinition(&ctor))
}

func TestPrintClassFieldOrigin(t *testing.T) {
	parent := &ClassFieldOrigin{
		Kind: FieldOriginParent,
		Args: &ModuleTypeItem{Path: JsonTypePath{Pack: []string{"haxe"}, TypeName: "Exception"}},
	}

	testCases := []struct {
		name     string
		origin   *ClassFieldOrigin
		expected string
		ok       bool
	}{
		{name: "nil origin", origin: nil, expected: "", ok: false},
		{name: "parent type", origin: parent, expected: "haxe.Exception", ok: true},
		{name: "built-in", origin: &ClassFieldOrigin{Kind: FieldOriginBuiltIn}, expected: "", ok: false},
		{name: "unknown", origin: &ClassFieldOrigin{Kind: FieldOriginUnknown}, expected: "", ok: false},
		{
			name:     "anonymous structure",
			origin:   &ClassFieldOrigin{Kind: FieldOriginAnonymousStructure},
			expected: "anonymous structure",
			ok:       true,
		},
		{name: "self without args", origin: &ClassFieldOrigin{Kind: FieldOriginSelf}, expected: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PrintClassFieldOrigin(tc.origin)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}
