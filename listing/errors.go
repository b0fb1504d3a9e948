package listing

import "errors"

// Error taxonomy shared by the fill and migration flows. Columns missing from a template are
// deliberately not an error: those fields are skipped.
var (
	// ErrMissingInput: a required input (prefix, image, template, variants) is absent.
	ErrMissingInput = errors.New("missing input")
	// ErrEmptyCatalog: no text header was found in the template's header rows.
	ErrEmptyCatalog = errors.New("template has no headers")
	// ErrAnnotationFailed: the vision model call failed or returned unusable data.
	ErrAnnotationFailed = errors.New("annotation failed")
	// ErrSaveFailed: the filled workbook could not be serialized.
	ErrSaveFailed = errors.New("save failed")
)

// ErrInvalidTemplate: the uploaded template is not a readable workbook.
var ErrInvalidTemplate = errors.New("invalid template")
