package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPlotType      ErrorCode = 102
	ErrCodeInvalidShape         ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104
	ErrCodeInvalidColorSchema   ErrorCode = 105

	// Data/Resource errors (200-299)
	ErrCodeColumnNotFound        ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 203

	// Figure errors (300-399)
	ErrCodeInvalidPanel     ErrorCode = 300
	ErrCodeInvalidRowHeight ErrorCode = 301
	ErrCodeFigureEncoding   ErrorCode = 302

	// Settings errors (400-499)
	ErrCodeSettingsLoadFailed ErrorCode = 400
	ErrCodeSettingsInvalid    ErrorCode = 401
)
