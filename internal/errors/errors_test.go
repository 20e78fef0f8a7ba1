package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestPrepError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *PrepError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
		{
			name:     "per-mutation error",
			err:      New(CategoryScheduler, SeverityError, "job submission failed"),
			expected: "scheduler (error): job submission failed",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestPrepError_WithContext(t *testing.T) {
	err := TopologyNotFound("/proj/Q94R/analysis/gbsa").
		WithContext("mutation", "Q94R")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}
	if err.Context["dir"] != "/proj/Q94R/analysis/gbsa" {
		t.Errorf("Context[dir] = %v", err.Context["dir"])
	}
	if err.Context["mutation"] != "Q94R" {
		t.Errorf("Context[mutation] = %v", err.Context["mutation"])
	}
}

func TestPrepError_Unwrap(t *testing.T) {
	cause := stdErrors.New("disk full")
	err := WriteFailed("/proj/Q94R/analysis/gbsa/MM-GBSA.in", cause)

	if !stdErrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var perr *PrepError
	if !stdErrors.As(err, &perr) {
		t.Fatal("errors.As should extract *PrepError")
	}
	if perr.Category != CategoryFileSystem {
		t.Errorf("Category = %q, want %q", perr.Category, CategoryFileSystem)
	}
}

func TestPrepError_IsFatal(t *testing.T) {
	if !WriteFailed("x", fmt.Errorf("eio")).IsFatal() {
		t.Error("filesystem write failure must be fatal")
	}
	if TopologyNotFound("x").IsFatal() {
		t.Error("missing topology is a per-mutation failure, not fatal")
	}
	if SubmitFailed("x.sh", fmt.Errorf("exit 1")).IsFatal() {
		t.Error("submission failure is a per-mutation failure, not fatal")
	}
}
