package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidDate   ErrorCode = "VALIDATION_004"
)

// Statement parsing error codes (PARSE_*)
const (
	ParseInvalidHeader   ErrorCode = "PARSE_001"
	ParseInvalidRow      ErrorCode = "PARSE_002"
	ParseInvalidAmount   ErrorCode = "PARSE_003"
	ParseExtractionError ErrorCode = "PARSE_004"
	ParseEmptyFile       ErrorCode = "PARSE_005"
)

// Upload boundary error codes (UPLOAD_*)
const (
	UploadMissingFile     ErrorCode = "UPLOAD_001"
	UploadFileTooLarge    ErrorCode = "UPLOAD_002"
	UploadInvalidFileType ErrorCode = "UPLOAD_003"
	UploadInvalidFilters  ErrorCode = "UPLOAD_004"
)

// Import error codes (IMPORT_*)
const (
	ImportNoTransactions ErrorCode = "IMPORT_001"
	ImportBatchTooLarge  ErrorCode = "IMPORT_002"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound ErrorCode = "CATEGORY_001"
	CategoryInvalid  ErrorCode = "CATEGORY_002"
)

// Payment method error codes (PAYMENT_METHOD_*)
const (
	PaymentMethodNotFound ErrorCode = "PAYMENT_METHOD_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials: "Invalid credentials",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidDate:   "Invalid date format or range",

	// Parsing errors
	ParseInvalidHeader:   "Statement header does not match the expected columns",
	ParseInvalidRow:      "Statement row could not be parsed",
	ParseInvalidAmount:   "Amount could not be parsed",
	ParseExtractionError: "PDF text could not be extracted. The file may be corrupt or image-based",
	ParseEmptyFile:       "Statement file contains no data rows",

	// Upload errors
	UploadMissingFile:     "Multipart field 'file' is required",
	UploadFileTooLarge:    "Uploaded file exceeds the maximum allowed size",
	UploadInvalidFileType: "Uploaded file type is not supported for this import",
	UploadInvalidFilters:  "Filters field is not valid JSON",

	// Import errors
	ImportNoTransactions: "No transactions were provided for import",
	ImportBatchTooLarge:  "Import batch exceeds the maximum allowed size",

	// Category errors
	CategoryNotFound: "Category not found",
	CategoryInvalid:  "Invalid category",

	// Payment method errors
	PaymentMethodNotFound: "Payment method not found",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
