// Package audit persists a per-deployment recovery journal: one row per
// deployment attempt capturing the final stepLog/results so an operator can
// reconcile or re-trigger teardown after a process restart. It does not make
// the pipeline itself resumable — see SPEC_FULL.md §C.1.
package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Record is the persisted journal row for one deployment attempt.
type Record struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key"`
	DeploymentID uuid.UUID      `gorm:"type:uuid;index;not null"`
	ProjectName  string         `gorm:"not null"`
	ProjectUUID  string
	Outcome      string         `gorm:"not null"` // "succeeded" | "partial" | "failed"
	StepLog      datatypes.JSON `gorm:"type:jsonb"`
	Results      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Record) TableName() string {
	return "audit_records"
}
