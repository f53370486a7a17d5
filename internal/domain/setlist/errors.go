package setlist

import "github.com/cockroachdb/errors"

// ErrEmptyDocument is returned when an export or save is attempted on
// a document with no entries. Callers treat it as a user-facing
// warning, not a failure.
var ErrEmptyDocument = errors.New("setlist is empty")
