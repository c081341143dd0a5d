package pipeline

import "testing"

func TestValidate_RejectsBadProjectName(t *testing.T) {
	outcome := validate(DeploymentSpec{ProjectName: "Invalid_Name!"})
	if outcome.Status != StatusFailed || !outcome.Hard {
		t.Errorf("expected hard failure for invalid project name, got %+v", outcome)
	}
}

func TestValidate_AcceptsValidProjectName(t *testing.T) {
	outcome := validate(DeploymentSpec{ProjectName: "demo-a", BuildPack: "nixpacks"})
	if outcome.Status != StatusCompleted {
		t.Errorf("expected valid spec to pass, got %+v", outcome)
	}
}

func TestValidate_RejectsUnknownDatabaseKind(t *testing.T) {
	outcome := validate(DeploymentSpec{
		ProjectName: "demo-a",
		Databases:   []DatabaseSpec{{Name: "main", Type: "oracle"}},
	})
	if outcome.Status != StatusFailed || !outcome.Hard {
		t.Errorf("expected hard failure for unsupported database kind, got %+v", outcome)
	}
}

func TestComputeFullDomain_CustomDomainWins(t *testing.T) {
	spec := DeploymentSpec{ProjectName: "demo-e", CustomDomain: "myapp.example.com"}
	if got := ComputeFullDomain(spec, "apps.example.com"); got != "myapp.example.com" {
		t.Errorf("got %q, want %q", got, "myapp.example.com")
	}
}

func TestComputeFullDomain_DefaultsToProjectNameAndBaseDomain(t *testing.T) {
	spec := DeploymentSpec{ProjectName: "demo-a"}
	want := "demo-a.apps.example.com"
	if got := ComputeFullDomain(spec, "apps.example.com"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
