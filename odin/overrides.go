package odin

import "github.com/kbolino/go-clay-codegen/emit"

// Prefix is the namespace prefix of public clay symbols.
const Prefix = "Clay_"

// DefaultOverrides returns the hand-maintained tables for binding clay.h to
// Odin. Each call returns a fresh value.
func DefaultOverrides() *emit.Overrides {
	return &emit.Overrides{
		Prefix: Prefix,
		Names: map[string]string{
			"Clay_TextElementConfigWrapMode": "TextWrapMode",
			"Clay_Border":                    "BorderData",
			"Clay_SizingMinMax":              "SizingConstraintsMinMax",
		},
		Complete: map[string]emit.Replacement{
			"Clay_RenderCommandArray": emit.Replace("ClayArray(RenderCommand)"),
			"Clay_Context":            emit.Replace("Context"),
			"Clay_ElementConfig":      {},
		},
		Types: map[string]string{
			"*char":       "[^]c.char",
			"const *char": "[^]c.char",
			"*void":       "rawptr",
			"bool":        "bool",
			"float":       "c.float",
			"uint16_t":    "u16",
			"uint32_t":    "u32",
			"int32_t":     "c.int32_t",
			"uintptr_t":   "rawptr",
			"void":        "void",

			"*Clay_RectangleElementConfig": "^RectangleElementConfig",
			"*Clay_TextElementConfig":      "^TextElementConfig",
			"*Clay_ImageElementConfig":     "^ImageElementConfig",
			"*Clay_FloatingElementConfig":  "^FloatingElementConfig",
			"*Clay_CustomElementConfig":    "^CustomElementConfig",
			"*Clay_ScrollElementConfig":    "^ScrollElementConfig",
			"*Clay_BorderElementConfig":    "^BorderElementConfig",
		},
		StructMemberTypes: map[string]map[string]string{
			"Clay_Arena": {
				"nextAllocation": "uintptr",
				"capacity":       "uintptr",
			},
			"Clay_ErrorHandler": {
				"errorHandlerFunction": `proc "c" (errorData: ErrorData)`,
			},
			"Clay_SizingAxis": {
				"size": "SizingConstraints",
			},
			"Clay_RenderCommand": {
				"zIndex": "i32",
			},
		},
		StructMemberNames: map[string]map[string]string{
			"Clay_ErrorHandler": {
				"errorHandlerFunction": "handler",
			},
			"Clay_SizingAxis": {
				"size": "constraints",
			},
		},
		FixedArrayStructs: []string{
			"Clay_Color",
			"Clay_Vector2",
		},
		PascalEnums: []string{
			"Clay_RenderCommandType",
			"Clay_TextElementConfigWrapMode",
			"Clay__ElementConfigType",
		},
		EnumMemberNames: map[string]map[string]string{
			"Clay__ElementConfigType": {
				"CLAY__ELEMENT_CONFIG_TYPE_BORDER_CONTAINER":   "Border",
				"CLAY__ELEMENT_CONFIG_TYPE_FLOATING_CONTAINER": "Floating",
				"CLAY__ELEMENT_CONFIG_TYPE_SCROLL_CONTAINER":   "Scroll",
			},
		},
		EnumExtraMembers: map[string][]emit.EnumMember{
			"Clay__ElementConfigType": {
				{Name: "Id", Value: "65"},
				{Name: "Layout", Value: "66"},
			},
		},
		FuncParamNames: map[string]map[string]string{
			"Clay_SetCurrentContext": {
				"context": "ctx",
			},
		},
		FuncParamTypes: map[string]map[string]string{
			"Clay_CreateArenaWithCapacityAndMemory": {
				"offset": "[^]u8",
			},
			"Clay_SetMeasureTextFunction": {
				"measureTextFunction": `proc "c" (text: ^StringSlice, config: ^TextElementConfig, userData: uintptr) -> Dimensions`,
				"userData":            "uintptr",
			},
			"Clay_RenderCommandArray_Get": {
				"index": "i32",
			},
			"Clay__AttachElementConfig": {
				"config": "rawptr",
			},
		},
	}
}
