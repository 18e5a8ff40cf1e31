package locres

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports data that is not a supported localization resource.
	ErrFormat = errors.New("invalid locres data")

	// ErrEmptyInput is returned when encoding a document with no entries.
	ErrEmptyInput = errors.New("no entries to encode")

	// ErrMissingReference reports a key whose string table index does not
	// exist. Only returned with WithStrictReferences.
	ErrMissingReference = errors.New("missing string table reference")
)

func formatError(op string, err error) error {
	if errors.Is(err, ErrFormat) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrFormat, err)
}
