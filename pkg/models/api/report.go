package api

import (
	"encoding/json"
	"time"
)

type ConsolidatedReport struct {
	Month     string          `json:"month"`
	Sources   int             `json:"sources"`
	Fields    json.RawMessage `json:"fields"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Health struct {
	Status string `json:"status"`
}

type Error struct {
	Error string `json:"error"`
}
