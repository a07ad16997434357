package core

import "errors"

// Error taxonomy. Producers wrap these with context; callers match with errors.Is.
var (
	// ErrValidation reports an annotation that is not applicable in its group's current state,
	// or a payload missing required values.
	ErrValidation = errors.New("validation failed")

	// ErrFieldNotFound reports a source column that is absent from the data source.
	ErrFieldNotFound = errors.New("field not found")

	// ErrDuplicateName reports a name collision where uniqueness is required.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrNotFound reports a read of a group, connection or model element that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTypeMismatch reports a property set with an incompatible value type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrCodec reports a malformed annotation document.
	ErrCodec = errors.New("malformed document")
)
