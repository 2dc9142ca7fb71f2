package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInvalidState      = "INVALID_STATE"
	CodeNegativeNetSalary = "NEGATIVE_NET_SALARY"
	CodeNothingToProcess  = "NOTHING_TO_PROCESS"

	// Upstream collaborators (artifact rendering / storage)
	CodeArtifactGenerationFailed = "ARTIFACT_GENERATION_FAILED"
	CodeArtifactStorageFailed    = "ARTIFACT_STORAGE_FAILED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
