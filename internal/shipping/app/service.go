package app

import (
	"math"

	"github.com/miniretail/checkout/internal/shipping/domain"
)

// Calculator turns shipment items into a notice. It is a pure computation
// with no side effects; printing the notice belongs to the caller.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

func (Calculator) Ship(items []domain.ShipmentItem) domain.ShipmentNotice {
	lines := make([]domain.ShipmentLine, 0, len(items))
	var totalKg float64

	for _, item := range items {
		totalKg += item.WeightKg
		lines = append(lines, domain.ShipmentLine{
			Name:  item.Name,
			Grams: int64(math.Round(item.WeightKg * 1000)),
		})
	}

	return domain.ShipmentNotice{
		Lines:         lines,
		TotalWeightKg: math.Round(totalKg*10) / 10,
	}
}
