package service

import (
	"context"
	"fmt"

	"github.com/mercadito-store/storefront-api/internal/catalog"
)

// sampleRecordCount is how many raw records the diagnostic report includes.
const sampleRecordCount = 3

// DiagnosisReport describes the health of the external catalog connection.
// It is a support tool for operators wiring up a new database, not part of
// the steady-state query path.
type DiagnosisReport struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Database   *DatabaseInfo    `json:"database,omitempty"`
	Properties []PropertyInfo   `json:"properties,omitempty"`
	Records    []catalog.Record `json:"records,omitempty"`
	Suggestion string           `json:"suggestion,omitempty"`
}

// DatabaseInfo is the identity of the remote collection.
type DatabaseInfo struct {
	ID             string `json:"id"`
	Title          string `json:"title,omitempty"`
	CreatedTime    string `json:"created_time"`
	LastEditedTime string `json:"last_edited_time"`
}

// PropertyInfo is one column of the remote schema.
type PropertyInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Diagnose verifies that the external catalog is reachable and reports its
// schema plus a small sample of raw records. Failures come back as a
// structured success=false report, never as an error.
func (s *CatalogService) Diagnose(ctx context.Context) DiagnosisReport {
	if !s.fetcher.Configured() {
		return DiagnosisReport{
			Success:    false,
			Message:    "catalog token is not configured",
			Suggestion: "set CATALOG_TOKEN and CATALOG_DATABASE_ID",
		}
	}

	db, err := s.fetcher.Schema(ctx)
	if err != nil {
		s.logger.Error("catalog diagnosis failed", "error", err)
		return DiagnosisReport{
			Success:    false,
			Message:    fmt.Sprintf("failed to reach catalog: %v", err),
			Suggestion: "check CATALOG_TOKEN, CATALOG_DATABASE_ID and that the database is shared with the integration",
		}
	}

	report := DiagnosisReport{
		Success: true,
		Message: "catalog connection is working",
		Database: &DatabaseInfo{
			ID:             db.ID,
			CreatedTime:    db.CreatedTime.String(),
			LastEditedTime: db.LastEditedTime.String(),
		},
		Suggestion: "check that the property names match your database columns",
	}
	if len(db.Title) > 0 {
		report.Database.Title = db.Title[0].PlainText
	}
	for name, prop := range db.Properties {
		report.Properties = append(report.Properties, PropertyInfo{
			Name: name,
			Type: prop.Type,
			ID:   prop.ID,
		})
	}

	records, _, err := s.fetcher.QueryPage(ctx, sampleRecordCount)
	if err != nil {
		s.logger.Warn("catalog schema reachable but record fetch failed", "error", err)
		report.Message = fmt.Sprintf("schema reachable but records could not be fetched: %v", err)
		return report
	}
	report.Records = records
	report.Message = fmt.Sprintf("found %d records", len(records))

	return report
}
