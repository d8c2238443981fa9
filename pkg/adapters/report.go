package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/de-tools/service-reports/pkg/models/api"
	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/de-tools/service-reports/pkg/models/store"
	"github.com/de-tools/service-reports/pkg/services/consolidate"
)

func MapDomainParsedReportToStore(source string, r *domain.ParsedReport) (store.ParsedReport, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return store.ParsedReport{}, fmt.Errorf("marshal report %s: %w", source, err)
	}
	record := store.ParsedReport{
		Source:     source,
		ReportType: string(r.ReportType),
		Body:       body,
	}
	if r.DateRange != nil {
		record.DateFrom = &r.DateRange.From
		record.DateTo = &r.DateRange.To
	}
	return record, nil
}

func MapMonthToStore(m consolidate.Month) (store.ConsolidatedReport, error) {
	body, err := json.Marshal(m.Fields)
	if err != nil {
		return store.ConsolidatedReport{}, fmt.Errorf("marshal month %s: %w", m.From, err)
	}
	return store.ConsolidatedReport{
		Month:   m.From,
		Sources: m.Sources,
		Body:    body,
	}, nil
}

func MapMonthsToStore(months []consolidate.Month) ([]store.ConsolidatedReport, error) {
	records := make([]store.ConsolidatedReport, 0, len(months))
	for _, m := range months {
		record, err := MapMonthToStore(m)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func MapStoreConsolidatedReportToApi(r store.ConsolidatedReport) api.ConsolidatedReport {
	return api.ConsolidatedReport{
		Month:     r.Month,
		Sources:   r.Sources,
		Fields:    json.RawMessage(r.Body),
		UpdatedAt: r.UpdatedAt,
	}
}
