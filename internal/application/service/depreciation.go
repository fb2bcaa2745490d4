package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/pkg/apperror"
	"github.com/kontorhq/kontor-api/pkg/money"
)

// GenerateDepreciationSchedule computes the full AfA schedule for an asset.
// Linear spreads the depreciable amount evenly; declining uses
// double-declining-balance with the book value clamped at the salvage
// value. The final year always overrides the computed amount with whatever
// remains, so the schedule sums exactly to purchasePrice - salvageValue no
// matter how rounding fell in earlier years.
func GenerateDepreciationSchedule(
	assetID uuid.UUID,
	purchaseDate time.Time,
	purchasePrice decimal.Decimal,
	usefulLifeYears int,
	salvageValue decimal.Decimal,
	method enum.DepreciationMethod,
) ([]entity.DepreciationScheduleEntry, error) {
	if usefulLifeYears < 1 {
		return nil, apperror.NewBadRequestError("useful life must be at least one year")
	}
	if !method.Valid() {
		return nil, apperror.NewBadRequestError("unknown depreciation method: " + string(method))
	}
	if purchasePrice.IsNegative() || salvageValue.IsNegative() {
		return nil, apperror.NewBadRequestError("purchase price and salvage value must not be negative")
	}
	if salvageValue.GreaterThan(purchasePrice) {
		return nil, apperror.NewBadRequestError("salvage value must not exceed purchase price")
	}

	purchasePrice = money.Round2(purchasePrice)
	salvageValue = money.Round2(salvageValue)
	depreciable := money.Round2(purchasePrice.Sub(salvageValue))

	linearAmount := decimal.Zero
	decliningRate := decimal.Zero
	if method == enum.DepreciationLinear {
		linearAmount = money.Round2(depreciable.Div(decimal.NewFromInt(int64(usefulLifeYears))))
	} else {
		decliningRate = decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(usefulLifeYears)))
	}

	entries := make([]entity.DepreciationScheduleEntry, 0, usefulLifeYears)
	accumulated := decimal.Zero
	bookValue := purchasePrice

	for i := 0; i < usefulLifeYears; i++ {
		var amount decimal.Decimal
		switch {
		case i == usefulLifeYears-1:
			// Final year absorbs the rounding residue.
			amount = money.Round2(depreciable.Sub(accumulated))
		case method == enum.DepreciationLinear:
			amount = linearAmount
		default:
			amount = money.Round2(bookValue.Mul(decliningRate))
			// Never depreciate past the salvage value.
			if bookValue.Sub(amount).LessThan(salvageValue) {
				amount = money.Round2(bookValue.Sub(salvageValue))
			}
		}
		if amount.IsNegative() {
			amount = decimal.Zero
		}

		accumulated = money.Round2(accumulated.Add(amount))
		bookValue = money.Round2(purchasePrice.Sub(accumulated))

		entries = append(entries, entity.DepreciationScheduleEntry{
			AssetID:                 assetID,
			Year:                    purchaseDate.Year() + i,
			DepreciationAmount:      amount,
			AccumulatedDepreciation: accumulated,
			BookValue:               bookValue,
		})
	}

	return entries, nil
}
