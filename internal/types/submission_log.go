package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SubmissionAccepted = "accepted"
	SubmissionRejected = "rejected"
	SubmissionFailed   = "failed"
)

// SubmissionLog is the audit trail of every inbound submission. It is written
// best-effort outside the ingest transaction, so a row here never implies the
// household committed; Status carries the outcome.
type SubmissionLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID *uuid.UUID     `gorm:"type:uuid;column:household_id" json:"household_id"`
	Status      string         `gorm:"not null;column:status" json:"status"`
	Detail      *string        `gorm:"column:detail" json:"detail"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (SubmissionLog) TableName() string {
	return "submission_log"
}
