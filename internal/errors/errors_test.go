package errors

import (
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: "recipe not found",
	}

	expected := "NOT_FOUND: recipe not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("name is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "name is required" {
		t.Errorf("Message = %q, want %q", err.Message, "name is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("01ABC")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Details["identifier"] != "01ABC" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "01ABC")
	}
}

func TestNewParse(t *testing.T) {
	err := NewParse()

	if err.Code != ErrParse {
		t.Errorf("Code = %q, want %q", err.Code, ErrParse)
	}
	if err.Status != 422 {
		t.Errorf("Status = %d, want 422", err.Status)
	}
}

func TestNewIO(t *testing.T) {
	err := NewIO("/tmp/plugins.csv", fmt.Errorf("permission denied"))

	if err.Code != ErrIO {
		t.Errorf("Code = %q, want %q", err.Code, ErrIO)
	}
	if err.Details["path"] != "/tmp/plugins.csv" {
		t.Errorf("Details[path] = %v, want %q", err.Details["path"], "/tmp/plugins.csv")
	}
}

func TestNewImportInvalid(t *testing.T) {
	missing := []string{"recipe", "preset"}
	err := NewImportInvalid(missing)

	if err.Code != ErrImportInvalid {
		t.Errorf("Code = %q, want %q", err.Code, ErrImportInvalid)
	}
	if fields, ok := err.Details["missing_fields"].([]string); !ok || len(fields) != 2 {
		t.Errorf("Details[missing_fields] = %v, want %v", err.Details["missing_fields"], missing)
	}
}

func TestNewGenerationFailed(t *testing.T) {
	err := NewGenerationFailed(fmt.Errorf("quota exceeded"))

	if err.Code != ErrGenerationFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrGenerationFailed)
	}
	if err.Status != 502 {
		t.Errorf("Status = %d, want 502", err.Status)
	}
	// Cause goes in details; the message stays the user-facing retry hint
	if err.Details["cause"] != "quota exceeded" {
		t.Errorf("Details[cause] = %v, want %q", err.Details["cause"], "quota exceeded")
	}
}

func TestNewVaultEmpty(t *testing.T) {
	err := NewVaultEmpty()

	if err.Code != ErrVaultEmpty {
		t.Errorf("Code = %q, want %q", err.Code, ErrVaultEmpty)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if !Is(err, ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if Is(err, ErrParse) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		err := fmt.Errorf("plain error")
		if Is(err, ErrNotFound) {
			t.Error("Is() = true, want false for plain error")
		}
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := NewParse()
		wrapped := fmt.Errorf("loading rack: %w", inner)
		if !Is(wrapped, ErrParse) {
			t.Error("Is() = false, want true for wrapped error")
		}
	})
}
