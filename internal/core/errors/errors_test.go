package errors

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "rule not found")
		if err.Error() != "[NOT_FOUND] rule not found" {
			t.Errorf("expected [NOT_FOUND] rule not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		expected := "[INTERNAL_ERROR] internal failure: original error"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeConfigError, "duplicate rule id")
		if !IsCode(err, CodeConfigError) {
			t.Error("expected IsCode to return true for CodeConfigError")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeWithWrapped", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeParseError, "malformed tree")
		if !IsCode(err, CodeParseError) {
			t.Error("expected IsCode to return true for wrapped CodeParseError")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := New(CodeParseError, "malformed tree")
		err = AddContext(err, CtxPath, "src/App.jsx")
		var de *DomainError
		if !errors.As(err, &de) {
			t.Fatal("expected DomainError")
		}
		if de.Context[CtxPath] != "src/App.jsx" {
			t.Errorf("expected path context, got %v", de.Context)
		}
	})
}
