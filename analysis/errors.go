package analysis

import "errors"

// Analysis errors
var (
	ErrUnknownColumn    = errors.New("unknown column")
	ErrInvalidFormula   = errors.New("invalid formula")
	ErrInsufficientData = errors.New("not enough observations")
	ErrSingularDesign   = errors.New("design matrix is singular")
	ErrNoModels         = errors.New("no models configured")
	ErrEmptyTable       = errors.New("table has no rows")
)
