package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kontorhq/kontor-api/internal/domain/enum"
)

// Asset is a fixed-asset purchase record. It owns its depreciation schedule;
// the schedule is regenerated in full whenever any depreciation input
// (price, useful life, salvage value, method, purchase date) changes.
type Asset struct {
	ID                 uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	Name               string                  `gorm:"size:255;not null" json:"name"`
	Category           string                  `gorm:"size:100" json:"category"`
	PurchaseDate       time.Time               `gorm:"type:date;not null" json:"purchase_date"`
	PurchasePrice      decimal.Decimal         `gorm:"type:decimal(15,2);not null" json:"purchase_price"`
	UsefulLifeYears    int                     `gorm:"not null" json:"useful_life_years"`
	SalvageValue       decimal.Decimal         `gorm:"type:decimal(15,2);not null;default:0" json:"salvage_value"`
	DepreciationMethod enum.DepreciationMethod `gorm:"size:20;not null;default:'linear'" json:"depreciation_method"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`

	// Relationships
	Schedule []DepreciationScheduleEntry `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"schedule,omitempty"`
}

// BeforeCreate generates a UUID before inserting a new asset
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}

// DepreciationScheduleEntry is one derived AfA year for an asset. The entries
// of a schedule sum exactly to purchasePrice - salvageValue; the final year
// absorbs any rounding residue from earlier years.
type DepreciationScheduleEntry struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AssetID                 uuid.UUID       `gorm:"type:uuid;not null;index" json:"asset_id"`
	Year                    int             `gorm:"not null" json:"year"`
	DepreciationAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"depreciation_amount"`
	AccumulatedDepreciation decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"accumulated_depreciation"`
	BookValue               decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"book_value"`
	CreatedAt               time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before inserting a new schedule entry
func (e *DepreciationScheduleEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DepreciationScheduleEntry model
func (DepreciationScheduleEntry) TableName() string {
	return "depreciation_schedule_entries"
}
