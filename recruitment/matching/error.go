package matching

import (
	"net/http"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("MATCHING")

// Error codes
var (
	CodeLoadFailed  = ErrRegistry.Register("LOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to load entities for ranking")
	CodeNotJobOwner = ErrRegistry.Register("NOT_JOB_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Only the company that posted the job can see its matches")
)

func ErrLoadFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeLoadFailed, cause)
}

func ErrNotJobOwner() *errx.Error {
	return ErrRegistry.New(CodeNotJobOwner)
}
