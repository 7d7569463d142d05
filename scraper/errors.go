package scraper

import "errors"

// Extraction errors. Every one of them is fatal for the run.
var (
	ErrNoDocuments      = errors.New("no search documents given")
	ErrMissingMarker    = errors.New("structural marker not found")
	ErrIndexOutOfRange  = errors.New("marker index out of range")
	ErrMissingAttribute = errors.New("marker attribute not found")
	ErrMalformedNumber  = errors.New("malformed number")
	ErrMalformedLabel   = errors.New("malformed repository label")
	ErrUnknownColumn    = errors.New("rule targets unknown column")
)
