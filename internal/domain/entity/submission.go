package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kontorhq/kontor-api/internal/domain/enum"
)

// ElsterSubmission is the persisted audit record of a filed declaration.
// Rows are append-only in spirit: only the status fields move, and only
// forwards (draft -> submitted -> accepted | rejected).
type ElsterSubmission struct {
	ID             uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	Type           enum.SubmissionType   `gorm:"size:10;not null;index" json:"type"`
	Year           int                   `gorm:"not null;index" json:"year"`
	Period         string                `gorm:"size:10;not null" json:"period"`
	XMLPayload     string                `gorm:"type:text;not null" json:"xml_payload"`
	Status         enum.SubmissionStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`
	TransferTicket string                `gorm:"size:100" json:"transfer_ticket,omitempty"`
	ErrorMessage   string                `gorm:"type:text" json:"error_message,omitempty"`
	TestMode       bool                  `gorm:"not null;default:false" json:"test_mode"`
	SubmittedAt    *time.Time            `json:"submitted_at,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// BeforeCreate generates a UUID before inserting a new submission
func (s *ElsterSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ElsterSubmission model
func (ElsterSubmission) TableName() string {
	return "elster_submissions"
}
