package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Error codes — returned to clients via API responses.
const (
	ErrorInternal       = "ERROR_INTERNAL"
	ErrorManifest       = "ERROR_MANIFEST"
	ErrorTemplateRender = "ERROR_TEMPLATE_RENDER"
	ErrorRateLimited    = "ERROR_RATE_LIMITED"
	ErrorNotFound       = "ERROR_NOT_FOUND"
)
