package store

import "time"

type ParsedReport struct {
	Source     string
	ReportType string
	DateFrom   *string
	DateTo     *string
	Body       []byte
	ParsedAt   time.Time
}

type ConsolidatedReport struct {
	Month     string
	Sources   int
	Body      []byte
	UpdatedAt time.Time
}
