package embedding

import (
	"net/http"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("EMBEDDING")

var (
	CodeEmptyText        = ErrRegistry.Register("EMPTY_TEXT", errx.TypeValidation, http.StatusBadRequest, "Text to embed cannot be empty")
	CodeGenerationFailed = ErrRegistry.Register("GENERATION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Embedding provider call failed")
	CodeEmptyResponse    = ErrRegistry.Register("EMPTY_RESPONSE", errx.TypeExternal, http.StatusBadGateway, "Embedding provider returned no vector")
	CodeUnknownProvider  = ErrRegistry.Register("UNKNOWN_PROVIDER", errx.TypeValidation, http.StatusInternalServerError, "Unknown embedding provider")
	CodeQueueFailed      = ErrRegistry.Register("QUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Embedding queue operation failed")
)

func ErrEmptyText() *errx.Error {
	return ErrRegistry.New(CodeEmptyText)
}

func ErrGenerationFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeGenerationFailed, cause)
}

func ErrEmptyResponse() *errx.Error {
	return ErrRegistry.New(CodeEmptyResponse)
}

func ErrUnknownProvider(provider string) *errx.Error {
	return ErrRegistry.New(CodeUnknownProvider).WithDetail("provider", provider)
}

func ErrQueueFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeQueueFailed, cause)
}
