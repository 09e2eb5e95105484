package validator

// Validator validates annotated structs.
type Validator interface {
	// Validate returns nil when data passes all struct rules.
	Validate(data any) error
}
