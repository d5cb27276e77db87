package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/ledgerfolio/internal/domain"
	"github.com/aristath/ledgerfolio/internal/modules/portfolio"
)

// ErrInvalidTarget rejects non-positive target amounts at creation
// time, so progress computation can assume a valid positive target.
var ErrInvalidTarget = errors.New("target amount must be greater than zero")

// Service orchestrates goal CRUD and progress tracking.
type Service struct {
	goals     domain.GoalRepository
	positions domain.PositionRepository
	log       zerolog.Logger
}

// NewService creates a new goals service
func NewService(goals domain.GoalRepository, positions domain.PositionRepository, log zerolog.Logger) *Service {
	return &Service{
		goals:     goals,
		positions: positions,
		log:       log.With().Str("service", "goals").Logger(),
	}
}

// ListGoals returns a user's goals.
func (s *Service) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

// CreateGoal validates and stores a new goal. At most one goal may
// exist per (user, category) pair.
func (s *Service) CreateGoal(ctx context.Context, goal *domain.Goal) error {
	if err := s.validate(goal); err != nil {
		return err
	}

	existing, err := s.goals.ListByUser(ctx, goal.UserID)
	if err != nil {
		return fmt.Errorf("failed to check existing goals: %w", err)
	}
	for _, other := range existing {
		if other.Category == goal.Category {
			return domain.ErrDuplicateGoal
		}
	}

	return s.goals.Create(ctx, goal)
}

// UpdateGoal validates and replaces an existing goal.
func (s *Service) UpdateGoal(ctx context.Context, goal *domain.Goal) error {
	if err := s.validate(goal); err != nil {
		return err
	}

	existing, err := s.goals.ListByUser(ctx, goal.UserID)
	if err != nil {
		return fmt.Errorf("failed to check existing goals: %w", err)
	}
	for _, other := range existing {
		if other.Category == goal.Category && other.ID != goal.ID {
			return domain.ErrDuplicateGoal
		}
	}

	return s.goals.Update(ctx, goal)
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return s.goals.Delete(ctx, id)
}

// ProgressForUser computes the progress of every goal the user has,
// against the pre-folding per-category invested totals.
func (s *Service) ProgressForUser(ctx context.Context, userID string) ([]Progress, error) {
	userGoals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	if len(userGoals) == 0 {
		return []Progress{}, nil
	}

	positions, err := s.positions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	totals := portfolio.TotalsByCategory(positions)
	today := time.Now().UTC()

	progress := make([]Progress, 0, len(userGoals))
	for _, goal := range userGoals {
		progress = append(progress, ComputeProgress(goal, totals[goal.Category], today))
	}

	return progress, nil
}

func (s *Service) validate(goal *domain.Goal) error {
	if !goal.Category.IsValid() {
		return fmt.Errorf("unknown category %q", goal.Category)
	}
	if !goal.TargetAmount.IsPositive() {
		return ErrInvalidTarget
	}
	return nil
}
