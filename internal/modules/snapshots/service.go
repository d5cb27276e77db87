package snapshots

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/ledgerfolio/internal/domain"
	"github.com/aristath/ledgerfolio/internal/modules/portfolio"
)

// UserError attributes a snapshot failure to one user, so one user's
// failure never aborts the sweep over the others.
type UserError struct {
	UserID string `json:"user_id"`
	Error  string `json:"error"`
}

// HistoryStats summarizes a net-worth series. Statistics are
// display-only, so converting decimals to floats here is acceptable.
type HistoryStats struct {
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	TrendPerDay float64 `json:"trend_per_day"`
}

// Service records point-in-time net-worth snapshots.
type Service struct {
	positions domain.PositionRepository
	snapshots domain.SnapshotRepository
	log       zerolog.Logger
}

// NewService creates a new snapshot service
func NewService(positions domain.PositionRepository, snapshots domain.SnapshotRepository, log zerolog.Logger) *Service {
	return &Service{
		positions: positions,
		snapshots: snapshots,
		log:       log.With().Str("service", "snapshots").Logger(),
	}
}

// RecordForUser aggregates one user's positions and persists the grand
// total as of the given date.
func (s *Service) RecordForUser(ctx context.Context, userID string, asOf time.Time) error {
	positions, err := s.positions.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list positions: %w", err)
	}

	breakdown := portfolio.Aggregate(positions)

	return s.snapshots.Upsert(ctx, &domain.NetWorthSnapshot{
		UserID:        userID,
		AsOf:          asOf,
		TotalInvested: breakdown.GrandTotal,
	})
}

// RecordAll sweeps every known user, collecting per-user errors the way
// the import pipeline collects per-row errors.
func (s *Service) RecordAll(ctx context.Context, asOf time.Time) ([]UserError, error) {
	userIDs, err := s.positions.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var failures []UserError
	for _, userID := range userIDs {
		if err := s.RecordForUser(ctx, userID, asOf); err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Msg("Failed to record snapshot")
			failures = append(failures, UserError{UserID: userID, Error: err.Error()})
		}
	}

	s.log.Info().
		Int("users", len(userIDs)).
		Int("failed", len(failures)).
		Str("as_of", asOf.Format(dateFormat)).
		Msg("Snapshot sweep finished")

	return failures, nil
}

// History returns a user's snapshot series with summary statistics.
func (s *Service) History(ctx context.Context, userID string, from, to time.Time) ([]domain.NetWorthSnapshot, HistoryStats, error) {
	series, err := s.snapshots.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, HistoryStats{}, err
	}
	return series, computeStats(series), nil
}

// computeStats derives mean, standard deviation and a per-day linear
// trend slope from the series. Fewer than two points yield a flat
// trend.
func computeStats(series []domain.NetWorthSnapshot) HistoryStats {
	if len(series) == 0 {
		return HistoryStats{}
	}

	days := make([]float64, len(series))
	totals := make([]float64, len(series))
	origin := series[0].AsOf
	for i, snap := range series {
		days[i] = snap.AsOf.Sub(origin).Hours() / 24
		totals[i], _ = snap.TotalInvested.Float64()
	}

	stats := HistoryStats{Mean: stat.Mean(totals, nil)}
	if len(series) > 1 {
		stats.StdDev = stat.StdDev(totals, nil)
		_, stats.TrendPerDay = stat.LinearRegression(days, totals, nil, false)
	}

	return stats
}
