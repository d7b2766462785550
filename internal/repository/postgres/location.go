package postgres

import (
	"encoding/json"
	"fmt"

	"ridebook/internal/domain"
)

// locationJSON is the JSONB column form of domain.LocationPoint.
type locationJSON struct {
	Address    string  `json:"address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DoorOrFlat string  `json:"doorOrFlat,omitempty"`
}

func encodeLocation(p domain.LocationPoint) ([]byte, error) {
	return json.Marshal(locationJSON{
		Address:    p.Address,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		DoorOrFlat: p.DoorOrFlat,
	})
}

func decodeLocation(data []byte) (domain.LocationPoint, error) {
	var l locationJSON
	if err := json.Unmarshal(data, &l); err != nil {
		return domain.LocationPoint{}, fmt.Errorf("failed to decode location: %w", err)
	}
	return domain.LocationPoint{
		Address:    l.Address,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		DoorOrFlat: l.DoorOrFlat,
	}, nil
}

func encodeStops(stops []domain.LocationPoint) ([]byte, error) {
	out := make([]locationJSON, 0, len(stops))
	for _, s := range stops {
		out = append(out, locationJSON{
			Address:    s.Address,
			Latitude:   s.Latitude,
			Longitude:  s.Longitude,
			DoorOrFlat: s.DoorOrFlat,
		})
	}
	return json.Marshal(out)
}

func decodeStops(data []byte) ([]domain.LocationPoint, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw []locationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode stops: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	stops := make([]domain.LocationPoint, 0, len(raw))
	for _, l := range raw {
		stops = append(stops, domain.LocationPoint{
			Address:    l.Address,
			Latitude:   l.Latitude,
			Longitude:  l.Longitude,
			DoorOrFlat: l.DoorOrFlat,
		})
	}
	return stops, nil
}
