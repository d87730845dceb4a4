package utils

// Value dereferences a pointer, returning the zero value for nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to the given value. Used with the credential
// store's partial-update SetTokens contract.
func Ptr[T any](v T) *T {
	return &v
}
