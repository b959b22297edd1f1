package insight

import (
	"context"
	"fmt"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
	"github.com/bobmcallan/papertrade/internal/models"
	"github.com/bobmcallan/papertrade/internal/storage/localstate"
)

// Service implements InsightService
type Service struct {
	portfolio  interfaces.PortfolioService
	state      *localstate.Store
	thresholds Thresholds
	logger     *common.Logger
}

// NewService creates a new insight service
func NewService(portfolio interfaces.PortfolioService, state *localstate.Store, thresholds Thresholds, logger *common.Logger) *Service {
	return &Service{
		portfolio:  portfolio,
		state:      state,
		thresholds: thresholds,
		logger:     logger,
	}
}

// ForUser fetches a fresh snapshot and evaluates it
func (s *Service) ForUser(ctx context.Context, userID string, all bool) (*models.InsightList, error) {
	snap, err := s.portfolio.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	return s.FromSnapshot(ctx, snap, all)
}

// FromSnapshot evaluates the rules for snap and applies the user's dismissals.
// With all set, every triggered insight is returned.
func (s *Service) FromSnapshot(ctx context.Context, snap *models.Snapshot, all bool) (*models.InsightList, error) {
	triggered := Evaluate(InputFromSnapshot(snap), s.thresholds)
	list := &models.InsightList{Total: len(triggered)}

	if all {
		list.Insights = triggered
		return list, nil
	}

	dismissed := s.state.Dismissals(snap.UserID).Load(ctx)
	for _, ins := range triggered {
		if _, ok := dismissed[ins.ID]; ok {
			list.Hidden++
		}
	}
	list.Insights = Visible(triggered, dismissed, s.thresholds.DisplayLimit)

	s.logger.Debug().
		Str("user", snap.UserID).
		Int("triggered", list.Total).
		Int("dismissed", list.Hidden).
		Int("shown", len(list.Insights)).
		Msg("Insights evaluated")

	return list, nil
}

// Dismiss hides insightID for the user until ResetDismissed
func (s *Service) Dismiss(ctx context.Context, userID, insightID string) error {
	if insightID == "" {
		return fmt.Errorf("insight id is required")
	}
	if err := s.state.Dismissals(userID).Dismiss(ctx, insightID); err != nil {
		return fmt.Errorf("failed to dismiss %s: %w", insightID, err)
	}
	s.logger.Info().Str("user", userID).Str("insight", insightID).Msg("Insight dismissed")
	return nil
}

// ResetDismissed clears the user's dismissal set
func (s *Service) ResetDismissed(ctx context.Context, userID string) error {
	if err := s.state.Dismissals(userID).Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset dismissals: %w", err)
	}
	s.logger.Info().Str("user", userID).Msg("Dismissed insights reset")
	return nil
}

var _ interfaces.InsightService = (*Service)(nil)
