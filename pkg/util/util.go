package util

// GetPtr returns a pointer to v. Handy for optional struct fields.
func GetPtr[T any](v T) *T {
	return &v
}
