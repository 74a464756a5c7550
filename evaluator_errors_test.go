package launch

import (
	"errors"
	"strings"
	"testing"
)

func TestEvaluationErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	err := &EvaluationError{
		Engine: "expr",
		Expr:   "strictMode",
		Server: "mtlog-analyzer",
		Err:    cause,
	}

	message := err.Error()
	for _, fragment := range []string{"launch:", "expr evaluator", `expr="strictMode"`, "server=mtlog-analyzer", "boom"} {
		if !strings.Contains(message, fragment) {
			t.Fatalf("expected message to contain %q, got %q", fragment, message)
		}
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected Unwrap to expose the cause")
	}
}

func TestWrapEvaluationErrorFillsMetadata(t *testing.T) {
	inner := &EvaluationError{Err: errors.New("boom")}
	wrapped := wrapEvaluationError("expr", "strictMode", "mtlog-analyzer", inner)

	var evalErr *EvaluationError
	if !errors.As(wrapped, &evalErr) {
		t.Fatalf("expected *EvaluationError, got %T", wrapped)
	}
	if evalErr.Engine != "expr" || evalErr.Expr != "strictMode" || evalErr.Server != "mtlog-analyzer" {
		t.Fatalf("expected metadata to be filled in, got %#v", evalErr)
	}
}

func TestWrapEvaluationErrorPreservesExisting(t *testing.T) {
	inner := &EvaluationError{Engine: "custom", Expr: "a", Server: "b", Err: errors.New("boom")}
	wrapped := wrapEvaluationError("expr", "other", "other", inner)

	var evalErr *EvaluationError
	if !errors.As(wrapped, &evalErr) {
		t.Fatalf("expected *EvaluationError, got %T", wrapped)
	}
	if evalErr.Engine != "custom" || evalErr.Expr != "a" || evalErr.Server != "b" {
		t.Fatalf("expected existing metadata preserved, got %#v", evalErr)
	}
}

func TestWrapEvaluatorErrorPrefixes(t *testing.T) {
	err := wrapEvaluatorError("expr", errors.New("boom"))
	if !strings.HasPrefix(err.Error(), "launch: expr evaluator:") {
		t.Fatalf("expected prefixed message, got %q", err.Error())
	}

	already := wrapEvaluatorError("expr", err)
	if already != err {
		t.Fatal("expected already-prefixed error to pass through")
	}

	if wrapEvaluatorError("expr", nil) != nil {
		t.Fatal("expected nil passthrough")
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{
		Binary:  "mtlog-lsp",
		Sources: []string{SourceSettings, SourcePath, SourceGoBin},
		Install: "go install github.com/willibrandon/mtlog/cmd/mtlog-lsp@latest",
	}
	message := err.Error()
	for _, fragment := range []string{"mtlog-lsp", "settings, PATH, GOBIN", "go install"} {
		if !strings.Contains(message, fragment) {
			t.Fatalf("expected message to contain %q, got %q", fragment, message)
		}
	}
}

func TestWrapSettingsErrorPassthrough(t *testing.T) {
	cause := errors.New("parse failure")
	wrapped := wrapSettingsError("mtlog-analyzer", cause)

	var settingsErr *SettingsError
	if !errors.As(wrapped, &settingsErr) {
		t.Fatalf("expected *SettingsError, got %T", wrapped)
	}
	if !errors.Is(wrapped, cause) {
		t.Fatal("expected cause to be preserved")
	}

	again := wrapSettingsError("mtlog-analyzer", wrapped)
	if again != wrapped {
		t.Fatal("expected double wrap to be avoided")
	}

	if wrapSettingsError("mtlog-analyzer", nil) != nil {
		t.Fatal("expected nil passthrough")
	}
}
