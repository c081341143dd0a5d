package pipeline

import (
	"fmt"
	"regexp"

	"github.com/deployhub/orchestrator/internal/resource"
)

var projectNameRe = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

var validBuildPacks = map[string]bool{"nixpacks": true, "dockerfile": true, "static": true}

var validDBKinds = map[string]bool{
	string(resource.KindPostgres): true,
	string(resource.KindMySQL):    true,
	string(resource.KindRedis):    true,
	string(resource.KindMongo):    true,
}

// validate is the pure, local VALIDATE step (§4.3 step 1): it rejects a
// malformed projectName, buildPack, or database kind before any external
// call is made.
func validate(spec DeploymentSpec) StepOutcome {
	if !projectNameRe.MatchString(spec.ProjectName) || len(spec.ProjectName) > 63 {
		return Failed("invalid project name", fmt.Sprintf("projectName %q must match [a-z0-9]([-a-z0-9]*[a-z0-9])? and be at most 63 characters", spec.ProjectName), true)
	}

	if spec.BuildPack != "" && !validBuildPacks[spec.BuildPack] {
		return Failed("invalid build pack", fmt.Sprintf("buildPack %q must be one of nixpacks, dockerfile, static", spec.BuildPack), true)
	}

	for _, db := range spec.Databases {
		if !validDBKinds[db.Type] {
			return Failed("invalid database kind", fmt.Sprintf("database %q has unsupported type %q", db.Name, db.Type), true)
		}
	}

	return Completed(fmt.Sprintf("validated deployment spec for %s", spec.ProjectName))
}

// ComputeFullDomain implements §3's fullDomain selection rule, shared by
// the orchestrator (which must compute it before the pipeline runs) and
// used verbatim in the VALIDATE-adjacent setup.
func ComputeFullDomain(spec DeploymentSpec, baseDomain string) string {
	if spec.CustomDomain != "" {
		return spec.CustomDomain
	}
	return spec.ProjectName + "." + baseDomain
}
