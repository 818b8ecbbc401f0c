package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainError(t *testing.T) {
	if got := ToDomainError(nil); got != nil {
		t.Fatalf("ToDomainError(nil) = %v, want nil", got)
	}

	forbidden := NewForbidden("no access")
	if got := ToDomainError(forbidden); got.Code != "FORBIDDEN" || got.HTTPStatus != http.StatusForbidden {
		t.Errorf("domain errors must pass through, got %s/%d", got.Code, got.HTTPStatus)
	}

	wrapped := NewStoreFailure(errors.New("boom"))
	if got := ToDomainError(wrapped); got.Code != "STORE_FAILURE" {
		t.Errorf("wrapped domain error code = %s, want STORE_FAILURE", got.Code)
	}

	if got := ToDomainError(pgx.ErrNoRows); got.Code != "NOT_FOUND" || got.HTTPStatus != http.StatusNotFound {
		t.Errorf("missing row maps to %s/%d, want NOT_FOUND/404", got.Code, got.HTTPStatus)
	}

	plain := errors.New("connection reset")
	got := ToDomainError(plain)
	if got.Code != "STORE_FAILURE" || got.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("generic error maps to %s/%d, want STORE_FAILURE/500", got.Code, got.HTTPStatus)
	}
	if !errors.Is(got, plain) {
		t.Error("mapped error must keep the cause in its chain")
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &DomainError{Code: "STORE_FAILURE", Message: "persistence failure", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("Unwrap must expose the cause")
	}
	if err.Error() != "persistence failure: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}
