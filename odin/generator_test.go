package odin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbolino/go-clay-codegen/emit"
	"github.com/kbolino/go-clay-codegen/extract"
)

const sectionTemplate = "{{structs}}\n=====\n{{enums}}\n=====\n{{public_functions}}\n=====\n{{private_functions}}"

type sections struct {
	structs, enums, public, private string
}

func parse(t *testing.T, src string) *extract.Catalog {
	t.Helper()
	cat, err := extract.ParseSource("test.h", src)
	require.NoError(t, err)
	return cat
}

func generate(t *testing.T, src string, overrides *emit.Overrides) sections {
	t.Helper()
	g := New(parse(t, src), overrides, emit.Options{Template: sectionTemplate})
	require.NoError(t, g.Generate())
	outputs := g.Outputs()
	require.Len(t, outputs, 1)
	parts := strings.Split(outputs[OutputFile], "\n=====\n")
	require.Len(t, parts, 4)
	return sections{structs: parts[0], enums: parts[1], public: parts[2], private: parts[3]}
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

func TestEnumCommonPrefix(t *testing.T) {
	out := generate(t, `typedef enum { A_FOO = 0, A_BAR = 1, A_BAZ = 2 } Clay_A;`, DefaultOverrides())
	assert.Equal(t, lines(
		"// Clay_A",
		"A :: enum EnumBackingType {",
		"    FOO = 0, // A_FOO",
		"    BAR = 1, // A_BAR",
		"    BAZ = 2, // A_BAZ",
		"}",
		"",
	), out.enums)
}

func TestEnumImplicitValuesAndSingleMember(t *testing.T) {
	out := generate(t, `
typedef enum { CLAY_LEFT_TO_RIGHT, CLAY_TOP_TO_BOTTOM } Clay_LayoutDirection;
typedef enum { CLAY_ONLY } Clay_Single;
`, DefaultOverrides())
	assert.Equal(t, lines(
		"// Clay_LayoutDirection",
		"LayoutDirection :: enum EnumBackingType {",
		"    LEFT_TO_RIGHT, // CLAY_LEFT_TO_RIGHT",
		"    TOP_TO_BOTTOM, // CLAY_TOP_TO_BOTTOM",
		"}",
		"",
		"// Clay_Single",
		"Single :: enum EnumBackingType {",
		"    CLAY_ONLY, // CLAY_ONLY",
		"}",
		"",
	), out.enums)
}

func TestEnumPascalOverridesAndExtras(t *testing.T) {
	out := generate(t, `
typedef enum {
    CLAY__ELEMENT_CONFIG_TYPE_NONE = 0,
    CLAY__ELEMENT_CONFIG_TYPE_RECTANGLE = 1,
    CLAY__ELEMENT_CONFIG_TYPE_BORDER_CONTAINER = 2,
    CLAY__ELEMENT_CONFIG_TYPE_FLOATING_CONTAINER = 4,
} Clay__ElementConfigType;
`, DefaultOverrides())
	assert.Equal(t, lines(
		"// Clay__ElementConfigType",
		"ElementConfigType :: enum EnumBackingType {",
		"    None = 0, // CLAY__ELEMENT_CONFIG_TYPE_NONE",
		"    Rectangle = 1, // CLAY__ELEMENT_CONFIG_TYPE_RECTANGLE",
		"    Border = 2, // CLAY__ELEMENT_CONFIG_TYPE_BORDER_CONTAINER",
		"    Floating = 4, // CLAY__ELEMENT_CONFIG_TYPE_FLOATING_CONTAINER",
		"    // Odin specific enum types",
		"    Id = 65,",
		"    Layout = 66,",
		"}",
		"",
	), out.enums)
}

func TestEnumStrippedNamesStayValid(t *testing.T) {
	out := generate(t, `
typedef enum { CLAY_A, CLAY_A_B } Clay_Nested;
typedef enum { CLAY_SCALE_1X = 1, CLAY_SCALE_2X = 2 } Clay_Scale;
`, DefaultOverrides())
	assert.Equal(t, lines(
		"// Clay_Nested",
		"Nested :: enum EnumBackingType {",
		"    A, // CLAY_A",
		"    A_B, // CLAY_A_B",
		"}",
		"",
		"// Clay_Scale",
		"Scale :: enum EnumBackingType {",
		"    SCALE_1X = 1, // CLAY_SCALE_1X",
		"    SCALE_2X = 2, // CLAY_SCALE_2X",
		"}",
		"",
	), out.enums)
}

func TestEnumCharacterValues(t *testing.T) {
	out := generate(t, `typedef enum { CLAY_K_A = 'a', CLAY_K_B = 'b' } Clay_Key;`, DefaultOverrides())
	assert.Equal(t, lines(
		"// Clay_Key",
		"Key :: enum EnumBackingType {",
		"    A = 'a', // CLAY_K_A",
		"    B = 'b', // CLAY_K_B",
		"}",
		"",
	), out.enums)
}

func TestFunctionReturningFunctionPointer(t *testing.T) {
	out := generate(t, `
void (*Clay_GetHandler(void))(float x);
double (*Clay_GetBadHandler(void))(void);
void (*Clay_handler)(float x);
void Clay_Plain(void);
`, DefaultOverrides())
	assert.Equal(t, lines(
		"    // Clay_GetBadHandler (*func() double) - has no mapping",
		`    GetHandler :: proc() -> proc "c" (x: c.float) --- // Clay_GetHandler`,
		"    Plain :: proc() --- // Clay_Plain",
	), out.public)
}

func TestRawUnionStruct(t *testing.T) {
	out := generate(t, `typedef union { float f; uint32_t u; } Clay_Bits;`, DefaultOverrides())
	assert.Equal(t, lines(
		"// Clay_Bits",
		"Bits :: struct #raw_union {",
		"    f: c.float, // f (float)",
		"    u: u32, // u (uint32_t)",
		"}",
		"",
	), out.structs)
}

func TestUnmappedMember(t *testing.T) {
	out := generate(t, `
typedef struct {
    double d;
    float f;
    unsigned bits : 3;
} Clay_D;
`, DefaultOverrides())
	assert.Equal(t, lines(
		"// Clay_D",
		"D :: struct {",
		"    // d (double) - has no mapping",
		"    f: c.float, // f (float)",
		"    // bits (unknown) - has no mapping",
		"}",
		"",
	), out.structs)
}

func TestStructMemberOverridesAndPointers(t *testing.T) {
	out := generate(t, `
typedef struct { int x; } Clay_Context;
typedef struct { float width; } Clay_Dimensions;
typedef struct {
    int zIndex;
    Clay_Dimensions *dimensions;
    const char *text;
    Clay_Context *owner;
    Clay_Dimensions sizes[2];
    void (*callback)(Clay_Dimensions d, void *userData);
} Clay_RenderCommand;
`, DefaultOverrides())
	assert.Equal(t, lines(
		"// Clay_Dimensions",
		"Dimensions :: struct {",
		"    width: c.float, // width (float)",
		"}",
		"",
		"// Clay_RenderCommand",
		"RenderCommand :: struct {",
		"    zIndex: i32, // zIndex (int)",
		"    dimensions: ^Dimensions, // dimensions (*Clay_Dimensions)",
		"    text: [^]c.char, // text (const *char)",
		"    owner: ^Context, // owner (*Clay_Context)",
		"    sizes: [2]Dimensions, // sizes ([2]Clay_Dimensions)",
		`    callback: proc "c" (d: Dimensions, userData: rawptr), // callback (*func(d Clay_Dimensions, userData *void) void)`,
		"}",
		"",
	), out.structs, "Clay_Context is completely overridden")
}

func TestUnionMembers(t *testing.T) {
	out := generate(t, `
typedef struct { float min; float max; } Clay_SizingMinMax;
typedef enum { CLAY__SIZING_TYPE_FIT, CLAY__SIZING_TYPE_GROW } Clay__SizingType;
typedef struct {
    union {
        Clay_SizingMinMax sizeMinMax;
        float sizePercent;
    };
    Clay__SizingType type;
} Clay_SizingAxis;
typedef struct {
    union {
        Clay_SizingMinMax minMax;
        float percent;
    } size;
    union {
        double unmapped;
        float mapped;
    } other;
} Clay_Named;
`, DefaultOverrides().Merge(&emit.Overrides{
		StructMemberTypes: map[string]map[string]string{"Clay_Named": {"size": "SizingConstraints"}},
		StructMemberNames: map[string]map[string]string{"Clay_Named": {"size": "constraints"}},
	}))
	assert.Equal(t, lines(
		"// Clay_Named",
		"Named :: struct {",
		"    constraints: SizingConstraints, // size (union)",
		"    // other (unknown type)",
		"}",
		"",
		"// Clay_SizingAxis",
		"SizingAxis :: struct {",
		"    using _: struct #raw_union {",
		"        sizeMinMax: SizingConstraintsMinMax, // sizeMinMax (Clay_SizingMinMax)",
		"        sizePercent: c.float, // sizePercent (float)",
		"    },",
		"    type: SizingType, // type (Clay__SizingType)",
		"}",
		"",
		"// Clay_SizingMinMax",
		"SizingConstraintsMinMax :: struct {",
		"    min: c.float, // min (float)",
		"    max: c.float, // max (float)",
		"}",
		"",
	), out.structs)
}

func TestFixedArrayStructs(t *testing.T) {
	overrides := DefaultOverrides().Merge(&emit.Overrides{
		FixedArrayStructs: []string{"Clay_Mixed", "Clay_Doubles"},
	})
	out := generate(t, `
typedef struct { float r, g, b, a; } Clay_Color;
typedef struct { float x; int y; } Clay_Mixed;
typedef struct { double x, y; } Clay_Doubles;
`, overrides)
	assert.Equal(t, lines(
		"// Clay_Color (overridden as fixed array)",
		"Color :: [4]c.float",
		"",
		"// Clay_Doubles (double) - has no mapping",
		"// Clay_Mixed (mixed member types) - has no mapping",
	), out.structs)
}

func TestFunctionsAllOrNothing(t *testing.T) {
	out := generate(t, `
typedef struct { int x; } Clay_Context;
void Clay_Good(float x, bool b);
float Clay_GetWidth(void);
double Clay_BadReturn(void);
void Clay_BadParam(float x, double y);
int Clay_Log(const char *format, ...);
void Clay_SetCurrentContext(Clay_Context *context);
void Clay__Private(uint32_t id);
`, DefaultOverrides())
	assert.Equal(t, lines(
		"    // Clay_BadParam - has no mapping",
		"    // Clay_BadReturn (double) - has no mapping",
		"    GetWidth :: proc() -> c.float --- // Clay_GetWidth",
		"    Good :: proc(x: c.float, b: bool) --- // Clay_Good",
		"    // Clay_Log (variadic) - has no mapping",
		"    SetCurrentContext :: proc(ctx: ^Context) --- // Clay_SetCurrentContext",
	), out.public)
	assert.Equal(t, "    _Private :: proc(id: u32) --- // Clay__Private", out.private)
}

func TestFunctionParamTypeOverride(t *testing.T) {
	out := generate(t, `
typedef struct { int capacity; } Clay_Arena;
Clay_Arena Clay_CreateArenaWithCapacityAndMemory(uint32_t capacity, void *offset);
`, DefaultOverrides())
	assert.Equal(t,
		"    CreateArenaWithCapacityAndMemory :: proc(capacity: u32, offset: [^]u8) -> Arena --- // Clay_CreateArenaWithCapacityAndMemory",
		out.public)
}

func TestNamespaceFilter(t *testing.T) {
	src := `
typedef struct { float x; } Other_Thing;
typedef struct { float x; } Clay__Internal;
typedef struct { float x; } Clay_Public;
typedef struct { float x; } Clay_ElementConfig;
void Clay_Keep(void);
void Clay_Drop(void);
`
	out := generate(t, src, DefaultOverrides())
	assert.Equal(t, lines(
		"// Clay_Public",
		"Public :: struct {",
		"    x: c.float, // x (float)",
		"}",
		"",
	), out.structs)
	assert.Contains(t, out.public, "Drop :: proc()")

	patterns, err := emit.ParsePatterns(strings.NewReader("Clay_.*\n!Clay_Drop\n"))
	require.NoError(t, err)
	g := New(parse(t, src), DefaultOverrides(), emit.Options{Template: "{{public_functions}}", Matcher: emit.NewMatcher(patterns)})
	require.NoError(t, g.Generate())
	assert.Equal(t, "    Keep :: proc() --- // Clay_Keep", g.Outputs()[OutputFile])
}

func TestSuppressedFunction(t *testing.T) {
	out := generate(t, `
void Clay_BeginLayout(void);
void Clay_EndLayout(void);
`, DefaultOverrides().Suppress("Clay_EndLayout"))
	assert.Equal(t, "    BeginLayout :: proc() --- // Clay_BeginLayout", out.public)
}

const orderingHeader = `
typedef struct { float b; } Clay_B;
typedef struct { float a; } Clay_A;
typedef struct { float c; } Clay_C;
typedef enum { CLAY_Z_ONE, CLAY_Z_TWO } Clay_Z;
typedef enum { CLAY_Y_ONE, CLAY_Y_TWO } Clay_Y;
void Clay_Second(void);
void Clay_First(void);
`

func TestOrderingAndCounts(t *testing.T) {
	cat := parse(t, orderingHeader)
	out := generate(t, orderingHeader, DefaultOverrides())

	var headers []string
	for _, line := range strings.Split(out.structs, "\n") {
		if strings.HasPrefix(line, "// Clay_") {
			headers = append(headers, strings.TrimPrefix(line, "// "))
		}
	}
	assert.Equal(t, cat.StructNames(), headers)
	assert.Less(t, strings.Index(out.enums, "// Clay_Y"), strings.Index(out.enums, "// Clay_Z"))
	assert.Less(t, strings.Index(out.public, "First ::"), strings.Index(out.public, "Second ::"))
	assert.Equal(t, len(cat.FunctionNames()), strings.Count(out.public, " --- // "))
}

func TestIdempotent(t *testing.T) {
	first := New(parse(t, orderingHeader), DefaultOverrides(), emit.Options{})
	require.NoError(t, first.Generate())
	second := New(parse(t, orderingHeader), DefaultOverrides(), emit.Options{})
	require.NoError(t, second.Generate())
	assert.Equal(t, first.Outputs(), second.Outputs())
}

func TestDefaultTemplate(t *testing.T) {
	g := New(parse(t, orderingHeader), DefaultOverrides(), emit.Options{})
	require.NoError(t, g.Generate())
	outputs := g.Outputs()
	assert.Len(t, outputs, 1, "raw sections are not outputs")
	content := outputs[OutputFile]
	assert.True(t, strings.HasPrefix(content, "package clay\n"))
	assert.NotContains(t, content, "{{")
	assert.Contains(t, content, "A :: struct {\n    a: c.float, // a (float)\n}\n")
	assert.Contains(t, content, "foreign Clay {\n    First :: proc() --- // Clay_First\n    Second :: proc() --- // Clay_Second\n}")
	assert.Contains(t, content, "foreign Clay {\n\n}")
}
