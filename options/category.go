package options

type CategoryEnum int

const (
	CategoryType        CategoryEnum = 1 << iota // cdecl_type: typedef declarations
	CategoryStruct                               // cdecl_struct: struct definitions
	CategoryUnion                                // cdecl_union: union definitions
	CategoryEnumeration                          // cdecl_enum: enum definitions
	CategoryVariable                             // cdecl_var: variable declarations
	CategoryFunction                             // cdecl_func: function prototypes
	CategoryConstant                             // cdecl_const: integer constant assignments

	CategoryAll  CategoryEnum = (1 << iota) - 1 // all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected
)

// Has returns true if category is part of the selection.
func (c CategoryEnum) Has(category CategoryEnum) bool {
	return c&category != 0
}
