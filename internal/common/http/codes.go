package http

const (
	CodeUnknown          = "UNKNOWN"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeInvalidForm      = "INVALID_FORM"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeUsernameTaken    = "USERNAME_TAKEN"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeRateLimited      = "RATE_LIMITED"
)
