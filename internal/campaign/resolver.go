// Package campaign resolves access codes against the Campaigns table.
package campaign

import (
	"context"
	"fmt"
	"strings"

	"candidate-gateway/internal/common/airtable"
	"candidate-gateway/internal/common/errors"
	"candidate-gateway/internal/common/logger"
	"candidate-gateway/internal/common/metrics"
)

// Store column names for the Campaigns table.
const (
	fieldAccessCode = "Access Code"
	fieldStatus     = "Status"
	fieldCandidates = "Candidates for this campaign"

	statusActive = "Active"
)

// Campaign is the ephemeral view of one active campaign, resolved fresh
// per request.
type Campaign struct {
	ID                 string
	CandidateRecordIDs []string
	Status             string
	AccessCode         string
}

// Verdict is the outcome of access code validation. NormalizedCode is
// only set when Valid.
type Verdict struct {
	Valid          bool
	NormalizedCode string
}

// RecordStore is the slice of the store client this resolver needs.
type RecordStore interface {
	Query(ctx context.Context, tableID string, opts airtable.QueryOptions) ([]airtable.Record, error)
}

type Resolver struct {
	store   RecordStore
	tableID string
	logger  logger.Logger
}

func NewResolver(store RecordStore, tableID string, log logger.Logger) *Resolver {
	return &Resolver{
		store:   store,
		tableID: tableID,
		logger:  log.WithFields(map[string]interface{}{"component": "campaign-resolver"}),
	}
}

// ResolveActive looks up the active campaign for an access code and
// returns the candidate record ids it grants access to. The code is
// passed through unmodified; the store-side equality is
// case-insensitive. Returns (nil, nil) when no campaign matches.
func (r *Resolver) ResolveActive(ctx context.Context, accessCode string) (*Campaign, error) {
	records, err := r.queryOne(ctx,
		fmt.Sprintf(`AND({%s} = "%s", {%s} = "%s")`,
			fieldAccessCode, escapeFormulaValue(accessCode), fieldStatus, statusActive))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	rec := records[0]
	return &Campaign{
		ID:                 rec.ID,
		CandidateRecordIDs: linkedIDs(rec.Fields[fieldCandidates]),
		Status:             statusActive,
		AccessCode:         accessCode,
	}, nil
}

// ValidateAccessCode upper-cases the submitted code and checks it
// against active campaigns. This is the validation endpoint's casing
// variant; the listing path keeps the raw code.
func (r *Resolver) ValidateAccessCode(ctx context.Context, accessCode string) (*Verdict, error) {
	normalized := strings.ToUpper(accessCode)

	records, err := r.queryOne(ctx,
		fmt.Sprintf(`AND(UPPER({%s}) = "%s", {%s} = "%s")`,
			fieldAccessCode, escapeFormulaValue(normalized), fieldStatus, statusActive))
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return &Verdict{Valid: false}, nil
	}
	return &Verdict{Valid: true, NormalizedCode: normalized}, nil
}

func (r *Resolver) queryOne(ctx context.Context, formula string) ([]airtable.Record, error) {
	if r.tableID == "" {
		return nil, errors.NewConfigurationError("campaigns table ID missing")
	}

	records, err := r.store.Query(ctx, r.tableID, airtable.QueryOptions{
		FilterByFormula: formula,
		MaxRecords:      1,
	})
	if err != nil {
		metrics.StoreQueriesTotal.WithLabelValues("campaigns", "error").Inc()
		r.logger.WithError(err).Error("campaign query failed", nil)
		return nil, errors.NewStoreQueryError("campaigns", err)
	}
	metrics.StoreQueriesTotal.WithLabelValues("campaigns", "success").Inc()
	return records, nil
}

// linkedIDs reads a linked-record field, which arrives as a JSON array
// of record id strings. Anything else yields an empty slice.
func linkedIDs(raw interface{}) []string {
	items, ok := raw.([]interface{})
	if !ok {
		return []string{}
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids
}

func escapeFormulaValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}
