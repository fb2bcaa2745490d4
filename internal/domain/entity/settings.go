package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settings holds the business-wide values exports and declarations embed:
// the Steuernummer for ELSTER XML and the DATEV consultant/client pair for
// the EXTF header. A single row exists per installation.
type Settings struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessName     string    `gorm:"size:255" json:"business_name"`
	TaxNumber        string    `gorm:"size:30" json:"tax_number"`
	VatID            string    `gorm:"size:20" json:"vat_id"`
	ConsultantNumber string    `gorm:"size:10" json:"consultant_number"`
	ClientNumber     string    `gorm:"size:10" json:"client_number"`
	HomeCountry      string    `gorm:"size:2;not null;default:'DE'" json:"home_country"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before inserting settings
func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Settings model
func (Settings) TableName() string {
	return "settings"
}
