package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/ledgerfolio/internal/domain"
	"github.com/aristath/ledgerfolio/internal/modules/importer"
)

// Service orchestrates position CRUD and portfolio aggregation.
type Service struct {
	positions domain.PositionRepository
	log       zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(positions domain.PositionRepository, log zerolog.Logger) *Service {
	return &Service{
		positions: positions,
		log:       log.With().Str("service", "portfolio").Logger(),
	}
}

// Breakdown loads the user's positions and aggregates them into ranked
// category buckets.
func (s *Service) Breakdown(ctx context.Context, userID string) (Breakdown, error) {
	positions, err := s.positions.ListByUser(ctx, userID)
	if err != nil {
		return Breakdown{}, fmt.Errorf("failed to list positions: %w", err)
	}
	return Aggregate(positions), nil
}

// ListPositions returns the user's raw positions.
func (s *Service) ListPositions(ctx context.Context, userID string) ([]domain.Position, error) {
	return s.positions.ListByUser(ctx, userID)
}

// CreatePosition validates and stores a manually entered position. The
// same rule table used by the bulk pipeline applies, so the two entry
// paths cannot diverge.
func (s *Service) CreatePosition(ctx context.Context, position *domain.Position) error {
	position.NormalizeQuantity()
	if violations := importer.ValidatePosition(*position); len(violations) > 0 {
		return &importer.ValidationError{Violations: violations}
	}
	return s.positions.Create(ctx, position)
}

// UpdatePosition validates and fully replaces the mutable fields of an
// existing position.
func (s *Service) UpdatePosition(ctx context.Context, position *domain.Position) error {
	position.NormalizeQuantity()
	if violations := importer.ValidatePosition(*position); len(violations) > 0 {
		return &importer.ValidationError{Violations: violations}
	}
	return s.positions.Update(ctx, position)
}

// DeletePosition removes one position.
func (s *Service) DeletePosition(ctx context.Context, id uuid.UUID) error {
	return s.positions.Delete(ctx, id)
}

// DeletePositions removes a batch of positions and returns the number
// actually deleted.
func (s *Service) DeletePositions(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.positions.DeleteMany(ctx, ids)
}
