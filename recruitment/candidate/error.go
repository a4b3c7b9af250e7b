package candidate

import (
	"net/http"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Error codes
var (
	CodeCandidateNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeCandidateAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Candidate already exists")
	CodeInvalidRequest         = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeProfileTextTooShort    = ErrRegistry.Register("PROFILE_TEXT_TOO_SHORT", errx.TypeValidation, http.StatusBadRequest, "Paste your LinkedIn profile text or resume text")
	CodeExtractionFailed       = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Could not extract a profile from the text, paste cleaner text")
	CodeCoachUnavailable       = ErrRegistry.Register("COACH_UNAVAILABLE", errx.TypeExternal, http.StatusBadGateway, "Career coach is unavailable")
	CodeInvalidIkigaiAnswer    = ErrRegistry.Register("INVALID_IKIGAI_ANSWER", errx.TypeValidation, http.StatusBadRequest, "Ikigai answers must be between 0 and 10")
	CodeInvalidEmbedding       = ErrRegistry.Register("INVALID_EMBEDDING", errx.TypeValidation, http.StatusUnprocessableEntity, "Embedding vector is empty or not finite")
	CodeInvalidSource          = ErrRegistry.Register("INVALID_SOURCE", errx.TypeValidation, http.StatusBadRequest, "Unknown embedding source")
	CodeEnqueueFailed          = ErrRegistry.Register("ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to schedule embedding")
)

// Helper functions
func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrCandidateAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeCandidateAlreadyExists)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrProfileTextTooShort() *errx.Error {
	return ErrRegistry.New(CodeProfileTextTooShort).WithDetail("min_length", MinImportTextLength)
}

func ErrExtractionFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeExtractionFailed, cause)
}

func ErrCoachUnavailable(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeCoachUnavailable, cause)
}

func ErrInvalidIkigaiAnswer() *errx.Error {
	return ErrRegistry.New(CodeInvalidIkigaiAnswer)
}

func ErrInvalidEmbedding() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmbedding)
}

func ErrInvalidSource() *errx.Error {
	return ErrRegistry.New(CodeInvalidSource)
}

func ErrEnqueueFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeEnqueueFailed, cause)
}
