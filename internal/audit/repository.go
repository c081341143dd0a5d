package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Repository persists and retrieves deployment journal records.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts one journal row for a completed (or aborted) deployment attempt.
func (r *Repository) Save(ctx context.Context, deploymentID uuid.UUID, projectName, projectUUID, outcome string, stepLog, results []byte) error {
	record := &Record{
		ID:           uuid.New(),
		DeploymentID: deploymentID,
		ProjectName:  projectName,
		ProjectUUID:  projectUUID,
		Outcome:      outcome,
		StepLog:      datatypes.JSON(stepLog),
		Results:      datatypes.JSON(results),
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save audit record: %w", err)
	}
	return nil
}

// FindByDeploymentID looks up the journal row for a given deployment, if any.
func (r *Repository) FindByDeploymentID(ctx context.Context, deploymentID uuid.UUID) (*Record, error) {
	var record Record
	err := r.db.WithContext(ctx).Where("deployment_id = ?", deploymentID).First(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find audit record: %w", err)
	}
	return &record, nil
}

// List returns the most recent journal rows across all projects, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	return records, nil
}

// ListByProjectName returns the journal rows for a project, most recent first.
func (r *Repository) ListByProjectName(ctx context.Context, projectName string) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).Where("project_name = ?", projectName).Order("created_at desc").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	return records, nil
}
