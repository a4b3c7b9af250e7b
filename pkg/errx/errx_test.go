package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRegistry = NewRegistry("TEST")
	codeMissing  = testRegistry.Register("MISSING", TypeNotFound, http.StatusNotFound, "thing not found")
)

func TestRegistryNew(t *testing.T) {
	err := testRegistry.New(codeMissing)

	assert.Equal(t, Code("TEST_MISSING"), err.Code)
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "TEST_MISSING: thing not found", err.Error())
}

func TestRegistryNewReturnsFreshErrors(t *testing.T) {
	a := testRegistry.New(codeMissing).WithDetail("id", "1")
	b := testRegistry.New(codeMissing)

	assert.Equal(t, "1", a.Details["id"])
	assert.Nil(t, b.Details)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := NewRegistry("DUP")
	r.Register("X", TypeInternal, http.StatusInternalServerError, "x")
	assert.Panics(t, func() {
		r.Register("X", TypeInternal, http.StatusInternalServerError, "x")
	})
}

func TestUnregisteredCode(t *testing.T) {
	err := testRegistry.New(Code("NOPE"))
	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestIsAndIsTypeThroughWrapping(t *testing.T) {
	base := testRegistry.NewWithCause(codeMissing, errors.New("sql: no rows"))
	wrapped := fmt.Errorf("loading: %w", base)

	assert.True(t, Is(wrapped, codeMissing))
	assert.True(t, IsType(wrapped, TypeNotFound))
	assert.False(t, IsType(wrapped, TypeInternal))
	assert.False(t, Is(errors.New("plain"), codeMissing))
	assert.Contains(t, base.Error(), "sql: no rows")
}

func TestWrapKeepsDomainErrors(t *testing.T) {
	domain := testRegistry.New(codeMissing)
	got := Wrap(domain, "failed", TypeInternal)
	assert.Same(t, domain, got)

	plain := errors.New("boom")
	got = Wrap(plain, "failed", TypeExternal)
	require.NotNil(t, got)
	assert.Equal(t, TypeExternal, got.Type)
	assert.Equal(t, http.StatusBadGateway, got.HTTPStatus)
	assert.ErrorIs(t, got, plain)

	assert.Nil(t, Wrap(nil, "x", TypeInternal))
}

func TestToHTTPResponse(t *testing.T) {
	resp := testRegistry.New(codeMissing).
		WithDetails(map[string]any{"job_id": "j-1"}).
		ToHTTPResponse()

	assert.Equal(t, "Not Found", resp.Error)
	assert.Equal(t, Code("TEST_MISSING"), resp.Code)
	assert.Equal(t, "j-1", resp.Details["job_id"])
}
