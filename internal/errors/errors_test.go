package errors

import "testing"

func TestAppError_Error(t *testing.T) {
	err := New(CodeInvalidProjectName, KindValidation, "bad project name")
	if err.Error() == "" {
		t.Error("Error() should not return empty string")
	}
}

func TestAppError_WithOp(t *testing.T) {
	err := New(CodeInvalidProjectName, KindValidation, "bad project name").WithOp("Validate")
	if err.Op != "Validate" {
		t.Errorf("expected Op 'Validate', got %s", err.Op)
	}
}

func TestAppError_WithMeta(t *testing.T) {
	err := New(CodeInvalidProjectName, KindValidation, "bad project name").WithMeta("field", "projectName")
	if err.Metadata["field"] != "projectName" {
		t.Errorf("expected metadata field 'projectName', got %v", err.Metadata["field"])
	}
}

func TestWrap(t *testing.T) {
	original := New(CodeBackendUnavailable, KindUnavailable, "connect refused")
	wrapped := Wrap(original, CodeDeploymentFailed, KindDeploymentFailed, "application failed to start")

	if wrapped.Cause != original {
		t.Error("wrapped error should carry the original as Cause")
	}
	if wrapped.Code != CodeDeploymentFailed {
		t.Errorf("expected code %s, got %s", CodeDeploymentFailed, wrapped.Code)
	}
}

func TestIsKind(t *testing.T) {
	err := New(CodeInvalidProjectName, KindValidation, "bad project name")
	if !IsKind(err, KindValidation) {
		t.Error("IsKind should return true for matching kind")
	}
	if IsKind(err, KindNotFound) {
		t.Error("IsKind should return false for non-matching kind")
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeInvalidProjectName, KindValidation, "bad project name")
	if !IsCode(err, CodeInvalidProjectName) {
		t.Error("IsCode should return true for matching code")
	}
}

func TestAsAppError_Unwraps(t *testing.T) {
	original := New(CodeBackendUnavailable, KindUnavailable, "connect refused")
	wrapped := Wrap(original, CodeDeploymentFailed, KindDeploymentFailed, "application failed to start")

	if AsAppError(wrapped.Cause) != original {
		t.Error("AsAppError should unwrap to the original error")
	}
}
