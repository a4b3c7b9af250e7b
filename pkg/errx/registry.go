package errx

import (
	"fmt"
	"sync"
)

type codeInfo struct {
	typ        Type
	httpStatus int
	message    string
}

// Registry holds the error codes of one domain under a common prefix
type Registry struct {
	prefix string

	mu    sync.RWMutex
	codes map[Code]codeInfo
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[Code]codeInfo),
	}
}

// Register declares a code. Registering the same code twice panics since
// it always indicates a programming error in a package-level var block.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(fmt.Sprintf("%s_%s", r.prefix, code))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codes[full]; exists {
		panic(fmt.Sprintf("errx: duplicate error code %s", full))
	}
	r.codes[full] = codeInfo{typ: t, httpStatus: httpStatus, message: message}
	return full
}

// New builds a fresh error for a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	info, ok := r.codes[code]
	r.mu.RUnlock()

	if !ok {
		return New(fmt.Sprintf("unregistered error code %s", code), TypeInternal)
	}

	return &Error{
		Code:       code,
		Type:       info.typ,
		Message:    info.message,
		HTTPStatus: info.httpStatus,
	}
}

// NewWithCause builds a registered error wrapping cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}

// Prefix returns the registry prefix
func (r *Registry) Prefix() string { return r.prefix }
