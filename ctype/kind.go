package ctype

//go:generate go tool stringer -type=TypeKind -output=kind_string.go

type TypeKind int

const (
	_ TypeKind = iota // skip zero value, use it as a default (invalid) value for TypeKind

	KindVoid
	KindBool
	KindChar
	KindSChar
	KindUChar
	KindShort
	KindUShort
	KindInt
	KindUInt
	KindLong
	KindULong
	KindLongLong
	KindULongLong
	KindFloat
	KindDouble
	KindLongDouble

	KindPointer
	KindArray
	KindFunction
	KindStruct
	KindUnion
	KindEnum
	KindTypedef
	KindQualified

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k TypeKind) IsScalar() bool {
	return KindVoid <= k && k <= KindLongDouble
}

func (k TypeKind) IsInteger() bool {
	switch k {
	default:
		return false
	case KindBool, KindChar, KindSChar, KindUChar,
		KindShort, KindUShort, KindInt, KindUInt,
		KindLong, KindULong, KindLongLong, KindULongLong:
		return true
	}
}

func (k TypeKind) IsSigned() bool {
	switch k {
	default:
		return false
	case KindChar, KindSChar, KindShort, KindInt, KindLong, KindLongLong:
		return true
	}
}

func (k TypeKind) IsAggregate() bool {
	switch k {
	default:
		return false
	case KindStruct, KindUnion, KindEnum:
		return true
	}
}

// Keyword returns the C type keyword for a scalar kind, or the
// introducing keyword for an aggregate kind. Empty for structural kinds.
func (k TypeKind) Keyword() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBool:
		return "_Bool"
	case KindChar:
		return "char"
	case KindSChar:
		return "signed char"
	case KindUChar:
		return "unsigned char"
	case KindShort:
		return "short"
	case KindUShort:
		return "unsigned short"
	case KindInt:
		return "int"
	case KindUInt:
		return "unsigned int"
	case KindLong:
		return "long"
	case KindULong:
		return "unsigned long"
	case KindLongLong:
		return "long long"
	case KindULongLong:
		return "unsigned long long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindLongDouble:
		return "long double"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	default:
		return ""
	}
}
