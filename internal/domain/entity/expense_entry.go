package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/pkg/money"
)

// ExpenseEntry is a booked expense row. DeductiblePercent scales the amount
// that flows into aggregates and input tax; 100 means fully deductible.
type ExpenseEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Vendor      string          `gorm:"size:255" json:"vendor"`
	NetAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"net_amount"`
	VatRate     enum.VatRate    `gorm:"not null" json:"vat_rate"`
	VatAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"vat_amount"`
	GrossAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"gross_amount"`

	Category          string             `gorm:"size:100;not null;index" json:"category"`
	EuerLine          int                `gorm:"not null" json:"euer_line"`
	DeductiblePercent int                `gorm:"not null;default:100" json:"deductible_percent"`
	PaymentMethod     enum.PaymentMethod `gorm:"size:20;not null;default:'bank'" json:"payment_method"`

	IsDeleted     bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	IsDuplicate   bool       `gorm:"not null;default:false" json:"is_duplicate"`
	DuplicateOfID *uuid.UUID `gorm:"type:uuid" json:"duplicate_of_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize derives VatAmount and GrossAmount from NetAmount and VatRate.
func (e *ExpenseEntry) Normalize() {
	e.NetAmount = money.Round2(e.NetAmount)
	e.VatAmount = money.VatAmount(e.NetAmount, int(e.VatRate))
	e.GrossAmount = money.Gross(e.NetAmount, e.VatAmount)
}

// DeductibleNet is the share of the net amount that enters aggregates.
func (e *ExpenseEntry) DeductibleNet() decimal.Decimal {
	return money.ApplyPercent(e.NetAmount, e.DeductiblePercent)
}

// DeductibleGross is the share of the gross amount booked in exports.
func (e *ExpenseEntry) DeductibleGross() decimal.Decimal {
	return money.ApplyPercent(e.GrossAmount, e.DeductiblePercent)
}

// BeforeCreate generates a UUID before inserting a new entry
func (e *ExpenseEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExpenseEntry model
func (ExpenseEntry) TableName() string {
	return "expense_entries"
}
