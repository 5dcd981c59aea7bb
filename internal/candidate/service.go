package candidate

import (
	"context"
	"fmt"
	"strings"

	"candidate-gateway/internal/common/airtable"
	"candidate-gateway/internal/common/errors"
	"candidate-gateway/internal/common/logger"
	"candidate-gateway/internal/common/metrics"
)

// RecordStore is the slice of the store client this service needs.
type RecordStore interface {
	Query(ctx context.Context, tableID string, opts airtable.QueryOptions) ([]airtable.Record, error)
}

// Service batch-fetches candidate records and maps them to Candidates.
type Service struct {
	store   RecordStore
	tableID string
	logger  logger.Logger
}

func NewService(store RecordStore, tableID string, log logger.Logger) *Service {
	return &Service{
		store:   store,
		tableID: tableID,
		logger:  log.WithFields(map[string]interface{}{"component": "candidate-service"}),
	}
}

// FetchByIDs fetches the candidates for the given record ids in one
// disjunctive query. Empty input short-circuits to an empty result
// without touching the store. Result order is store-defined.
func (s *Service) FetchByIDs(ctx context.Context, ids []string) ([]Candidate, error) {
	if s.tableID == "" {
		return nil, errors.NewConfigurationError("candidates table ID missing")
	}
	if len(ids) == 0 {
		return []Candidate{}, nil
	}

	clauses := make([]string, 0, len(ids))
	for _, id := range ids {
		clauses = append(clauses, fmt.Sprintf("RECORD_ID()='%s'", escapeFormulaValue(id)))
	}
	formula := "OR(" + strings.Join(clauses, ",") + ")"

	records, err := s.store.Query(ctx, s.tableID, airtable.QueryOptions{
		FilterByFormula: formula,
	})
	if err != nil {
		metrics.StoreQueriesTotal.WithLabelValues("candidates", "error").Inc()
		s.logger.WithError(err).Error("candidate batch query failed", map[string]interface{}{
			"idCount": len(ids),
		})
		return nil, errors.NewStoreQueryError("candidates", err)
	}
	metrics.StoreQueriesTotal.WithLabelValues("candidates", "success").Inc()

	candidates := make([]Candidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, MapRecord(rec))
	}
	return candidates, nil
}

// FetchActive lists every active candidate with a non-empty profile
// summary, sorted by the external GP record id.
func (s *Service) FetchActive(ctx context.Context) ([]Candidate, error) {
	if s.tableID == "" {
		return nil, errors.NewConfigurationError("candidates table ID missing")
	}

	records, err := s.store.Query(ctx, s.tableID, airtable.QueryOptions{
		FilterByFormula: "AND({Status} = 'Active', {AI Profile Summary} != '')",
		Sort: []airtable.SortField{
			{Field: fieldGPRecordID, Direction: "asc"},
		},
	})
	if err != nil {
		metrics.StoreQueriesTotal.WithLabelValues("candidates", "error").Inc()
		return nil, errors.NewStoreQueryError("candidates", err)
	}
	metrics.StoreQueriesTotal.WithLabelValues("candidates", "success").Inc()

	candidates := make([]Candidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, MapRecord(rec))
	}
	return candidates, nil
}

// escapeFormulaValue keeps interpolated values from breaking out of
// their quotes in a filter formula.
func escapeFormulaValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
