package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is an invoicing counterparty. EU business clients with a foreign
// country code are the grouping key for the ZM summary.
type Client struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	VatID        string    `gorm:"size:20;index" json:"vat_id"`
	CountryCode  string    `gorm:"size:2;not null;default:'DE'" json:"country_code"`
	IsEuBusiness bool      `gorm:"not null;default:false" json:"is_eu_business"`
	Email        string    `gorm:"size:255" json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before inserting a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
