package dto

type TripRequest struct {
	Address          string   `json:"address"`
	Lat              *float64 `json:"lat"`
	Lon              *float64 `json:"lon"`
	Items            []string `json:"items"`
	MaxDistanceMiles float64  `json:"max_distance_miles"`
	MaxStores        int      `json:"max_stores"`
	MaxRoutes        int      `json:"max_routes"`
}

type TripStopResponse struct {
	StoreID       string  `json:"store_id"`
	StoreName     string  `json:"store_name"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	DistanceMiles float64 `json:"distance_miles"`
	Score         float64 `json:"score"`
}

type TripRouteResponse struct {
	Stops              []TripStopResponse `json:"stops"`
	TotalDistanceMiles float64            `json:"total_distance_miles"`
	TotalScore         float64            `json:"total_score"`
}

type TripResponse struct {
	Start         PointResponse       `json:"start"`
	Routes        []TripRouteResponse `json:"routes"`
	Truncated     bool                `json:"truncated"`
	SkippedStores int                 `json:"skipped_stores"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
