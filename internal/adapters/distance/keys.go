package distance

import (
	"fmt"

	"grocery-route-service/internal/domain"
)

// coordKey renders a coordinate as a stable cache key. Rounding to six
// decimals (about 4 inches) keeps float formatting noise from splitting
// cache entries.
func coordKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lon, c.Lat)
}

func coordPairKey(a, b domain.Coordinates) string {
	return coordKey(a) + "|" + coordKey(b)
}
