package services

import (
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
)

// DashboardService assembles the dashboard screen
type DashboardService struct {
	session   *SessionService
	portfolio *PortfolioService
	refRepo   *repository.ReferenceRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(session *SessionService, portfolio *PortfolioService, refRepo *repository.ReferenceRepository) *DashboardService {
	return &DashboardService{session: session, portfolio: portfolio, refRepo: refRepo}
}

// Dashboard returns the user card, portfolio totals, allocation and the simulated value history.
func (s *DashboardService) Dashboard() models.DashboardResponse {
	view := s.portfolio.View()
	labels, history := s.refRepo.ValueHistory()
	return models.DashboardResponse{
		Profile:      s.session.Profile(),
		Summary:      view.Summary,
		Allocation:   view.Allocation,
		ValueHistory: history,
		HistoryLabel: labels,
	}
}
