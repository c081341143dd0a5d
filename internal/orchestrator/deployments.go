package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/deployhub/orchestrator/internal/errors"
)

// deploymentHistoryLimit bounds GET /api/deployments so a long-lived
// orchestrator doesn't hand back its entire journal in one response.
const deploymentHistoryLimit = 100

// ListDeployments returns the most recent audit journal rows (§C.1).
func (o *Orchestrator) ListDeployments(ctx context.Context) ([]DeploymentRecordView, error) {
	if o.auditRepo == nil {
		return []DeploymentRecordView{}, nil
	}

	records, err := o.auditRepo.List(ctx, deploymentHistoryLimit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, apperrors.KindInternal, "failed to list deployment journal")
	}

	out := make([]DeploymentRecordView, 0, len(records))
	for _, r := range records {
		out = append(out, DeploymentRecordView{
			DeploymentID: r.DeploymentID.String(),
			ProjectName:  r.ProjectName,
			ProjectUUID:  r.ProjectUUID,
			Outcome:      r.Outcome,
			StepLog:      []byte(r.StepLog),
			Results:      []byte(r.Results),
			CreatedAt:    r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out, nil
}

// GetDeployment returns the journal row for one deployment id (§C.1).
func (o *Orchestrator) GetDeployment(ctx context.Context, deploymentID string) (*DeploymentRecordView, error) {
	if o.auditRepo == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, apperrors.KindNotFound, "audit journal not configured")
	}

	id, err := uuid.Parse(deploymentID)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeNotFound, apperrors.KindNotFound, "invalid deployment id")
	}

	record, err := o.auditRepo.FindByDeploymentID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeNotFound, apperrors.KindNotFound, fmt.Sprintf("deployment %s not found", deploymentID))
	}

	return &DeploymentRecordView{
		DeploymentID: record.DeploymentID.String(),
		ProjectName:  record.ProjectName,
		ProjectUUID:  record.ProjectUUID,
		Outcome:      record.Outcome,
		StepLog:      []byte(record.StepLog),
		Results:      []byte(record.Results),
		CreatedAt:    record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
