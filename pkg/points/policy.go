package points

import (
	"math"

	"kyro-backend/domain"
)

// Points awarded per kilogram of verified e-waste.
var pointsPerKg = map[string]int{
	domain.CategorySmartphones:     50,
	domain.CategoryLaptops:         30,
	domain.CategoryTVs:             25,
	domain.CategoryBatteries:       40,
	domain.CategoryCables:          20,
	domain.CategorySmallAppliances: 15,
}

const fallbackPointsPerKg = 10

// CalculatePoints is pure and deterministic; it is used both at submission
// time to fix a request's award and by the client for point previews.
func CalculatePoints(category string, weightKg float64) int {
	rate, ok := pointsPerKg[category]
	if !ok {
		rate = fallbackPointsPerKg
	}
	pts := int(math.Floor(float64(rate) * weightKg))
	if pts < 0 {
		return 0
	}
	return pts
}
