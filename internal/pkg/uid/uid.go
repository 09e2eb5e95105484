package uid

// StringID generates string identifiers.
type StringID interface {
	// Generate returns a new identifier.
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	// Generate returns a new identifier.
	Generate() int64
}
