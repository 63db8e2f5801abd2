package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"grocery-route-service/internal/domain"
	"grocery-route-service/internal/geo"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
}

// fetchMatrixRow retrieves road distances in miles from one origin to many
// destinations using the OpenRouteService matrix endpoint. Results are in
// destination order.
func (o *ORSDistanceProvider) fetchMatrixRow(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]float64, error) {
	if len(destinations) == 0 {
		return []float64{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.client.baseURL, o.profile)

	locations := make([][]float64, 0, 1+len(destinations))
	locations = append(locations, origin.CoordsToList())
	for _, c := range destinations {
		locations = append(locations, c.CoordsToList())
	}

	destIdx := make([]int, 0, len(destinations))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	bodyObj := matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"distance"},
		Sources:      []int{0},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.client.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.client.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 {
		return nil, fmt.Errorf("expected 1 source row; got distances=%d", len(mr.Distances))
	}

	row := mr.Distances[0]
	if len(row) != len(destinations) {
		return nil, fmt.Errorf(
			"row length does not match destinations: distances=%d destinations=%d",
			len(row), len(destinations),
		)
	}

	out := make([]float64, len(destinations))
	for i, metersPtr := range row {
		// A null cell means ORS could not route the pair.
		if metersPtr == nil {
			return nil, fmt.Errorf("matrix returned no distance for destination %d", i)
		}
		out[i] = geo.MetersToMiles(*metersPtr)
	}

	return out, nil
}
