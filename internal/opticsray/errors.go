package opticsray

import "errors"

var (
	ErrShapeMismatch    = errors.New("shape mismatch")
	ErrInvalidGeometry  = errors.New("invalid geometry")
	ErrInvalidOptics    = errors.New("invalid optical configuration")
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidConfig    = errors.New("invalid config")
)
