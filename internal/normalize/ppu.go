package normalize

import "github.com/shelfscan/backend/internal/domain"

// PricePerUnit divides a price by the size expressed in the comparison
// sub-unit of its channel: fluid ounces for volume, net-weight ounces for
// weight. Returns nil when price or size is missing or size is non-positive.
func PricePerUnit(price *float64, size *domain.Size) *float64 {
	if price == nil || size == nil || size.Value <= 0 {
		return nil
	}

	var units float64
	switch size.Channel {
	case domain.UnitVolume:
		units = size.Value / MlPerFlOz
	case domain.UnitWeight:
		units = size.Value / GPerOz
	default:
		return nil
	}
	if units <= 0 {
		return nil
	}

	ppu := *price / units
	return &ppu
}
