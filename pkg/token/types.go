package token

// IsDataType reports whether typ may appear as a declared parameter or
// return type. Unknown is handled separately by callers as an imported type.
func IsDataType(typ Type) bool {
	switch typ {
	case Num, String, Bool, Nothing, NumArray, StringArray, BoolArray, Discrete:
		return true
	}
	return false
}

// IsPrimitive reports whether typ is a scalar type name that can be suffixed
// with [] to form an array type.
func IsPrimitive(typ Type) bool {
	return typ == Num || typ == String || typ == Bool
}
