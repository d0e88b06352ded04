package morceus

import "errors"

// Data errors. Any of these aborts table construction.
var (
	// ErrMalformedStem is returned for a stem or irregular-form line that
	// cannot be decomposed into a code and its tokens.
	ErrMalformedStem = errors.New("malformed stem declaration")
	// ErrMalformedTemplate is returned for a template line that cannot be parsed.
	ErrMalformedTemplate = errors.New("malformed template line")
	// ErrEmptyTemplate is returned for a template with neither endings nor dependencies.
	ErrEmptyTemplate = errors.New("template has no endings and no dependencies")
	// ErrEmptyGrammaticalData is returned for an ending that carries no grammatical meaning.
	ErrEmptyGrammaticalData = errors.New("ending has empty grammatical data")
	ErrDuplicateTemplate    = errors.New("duplicate template")
	ErrUnknownTemplate      = errors.New("unknown template")
	ErrTemplateCycle        = errors.New("template dependency cycle")
	// ErrEmptyTable is returned when every ending of a table was filtered out.
	ErrEmptyTable = errors.New("expanded table has no endings")
	// ErrUnknownTable is returned when a stem references a table that does not exist.
	ErrUnknownTable = errors.New("stem references unknown inflection table")
	// ErrInvalidConfig is returned for a Config selecting no source or both.
	ErrInvalidConfig = errors.New("invalid cruncher config")
)

// ErrInvalidOptions is returned by Options.Validate.
var ErrInvalidOptions = errors.New("invalid cruncher options")

// ErrMalformedTableLine is returned when reading back an exported table or
// ending index line fails.
var ErrMalformedTableLine = errors.New("malformed table line")
