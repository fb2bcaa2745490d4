package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/pkg/money"
)

// IncomeEntry is a booked revenue row. Once booked it is immutable except for
// the soft-delete and duplicate flags; aggregation queries must exclude
// deleted rows at the query boundary.
type IncomeEntry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date         time.Time       `gorm:"type:date;not null;index" json:"date"`
	Description  string          `gorm:"size:255;not null" json:"description"`
	ClientID     *uuid.UUID      `gorm:"type:uuid;index" json:"client_id,omitempty"`
	NetAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"net_amount"`
	VatRate      enum.VatRate    `gorm:"not null" json:"vat_rate"`
	VatAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"vat_amount"`
	GrossAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"gross_amount"`
	EuerCategory string          `gorm:"size:100;not null;index" json:"euer_category"`

	IsDeleted     bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	IsDuplicate   bool       `gorm:"not null;default:false" json:"is_duplicate"`
	DuplicateOfID *uuid.UUID `gorm:"type:uuid" json:"duplicate_of_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// Normalize derives VatAmount and GrossAmount from NetAmount and VatRate.
// Called at the service write boundary so the stored row always satisfies
// vat = round2(net*rate/100) and gross = round2(net+vat).
func (e *IncomeEntry) Normalize() {
	e.NetAmount = money.Round2(e.NetAmount)
	e.VatAmount = money.VatAmount(e.NetAmount, int(e.VatRate))
	e.GrossAmount = money.Gross(e.NetAmount, e.VatAmount)
}

// BeforeCreate generates a UUID before inserting a new entry
func (e *IncomeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IncomeEntry model
func (IncomeEntry) TableName() string {
	return "income_entries"
}
