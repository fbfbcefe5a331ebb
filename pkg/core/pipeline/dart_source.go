package pipeline

import (
	"context"
	"fmt"

	"peer_analysis/pkg/core/config"
	"peer_analysis/pkg/core/dart"
	"peer_analysis/pkg/core/store"
	"peer_analysis/pkg/models"
)

// DartSource implements StatementSource against the DART API, with an
// optional statement cache in front of it.
type DartSource struct {
	client *dart.Client
	cache  *store.StatementCache
	scale  float64
}

func NewDartSource(client *dart.Client, cache *store.StatementCache, scale float64) *DartSource {
	return &DartSource{client: client, cache: cache, scale: scale}
}

var _ StatementSource = (*DartSource)(nil)

// Fetch resolves the corp code, pulls the best available report for the
// year, and normalizes the rows into canonical items.
func (s *DartSource) Fetch(ctx context.Context, company config.Company, year string) (*models.ItemSet, models.SourceInfo, error) {
	corpCode, err := s.client.ResolveCorpCode(ctx, company)
	if err != nil {
		return nil, models.SourceInfo{}, fmt.Errorf("failed to resolve %s: %w", company.Name, err)
	}

	rows, reportCode, err := s.fetchRows(ctx, corpCode, year)
	if err != nil {
		return nil, models.SourceInfo{}, err
	}

	set := dart.Normalize(rows, dart.NormalizeOptions{
		Scale:      s.scale,
		DashIsZero: true,
	})
	if len(set.Values) == 0 {
		return nil, models.SourceInfo{}, fmt.Errorf("no usable statement rows for %s", company.Name)
	}

	info := s.client.BuildSourceInfo(ctx, company.Name, corpCode, year, reportCode)
	return set, info, nil
}

func (s *DartSource) fetchRows(ctx context.Context, corpCode, year string) ([]dart.AccountRow, string, error) {
	if s.cache != nil {
		for _, reportCode := range []string{dart.ReportAnnual, dart.ReportQ3, dart.ReportHalf} {
			if rows, ok := s.cache.Get(ctx, corpCode, year, reportCode); ok {
				return rows, reportCode, nil
			}
		}
	}

	rows, reportCode, err := s.client.FetchStatementAuto(ctx, corpCode, year)
	if err != nil {
		return nil, "", err
	}
	if s.cache != nil {
		s.cache.Put(ctx, corpCode, year, reportCode, rows)
	}
	return rows, reportCode, nil
}
