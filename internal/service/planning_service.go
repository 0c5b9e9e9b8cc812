package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/groenvak/offerte-service/internal/model"
	"github.com/groenvak/offerte-service/internal/repository"
)

// PlanningService beheert ploegen, voertuigen en de dagplanning.
type PlanningService struct {
	repo      *repository.PlanningRepository
	projecten *repository.ProjectRepository
}

func NewPlanningService(repo *repository.PlanningRepository, projecten *repository.ProjectRepository) *PlanningService {
	return &PlanningService{repo: repo, projecten: projecten}
}

func (s *PlanningService) ListPloegen(ctx context.Context, principal model.Principal) ([]model.Ploeg, error) {
	return s.repo.ListPloegen(ctx, principal.OrgID)
}

func (s *PlanningService) CreatePloeg(ctx context.Context, principal model.Principal, ploeg model.Ploeg) (*model.Ploeg, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(ploeg.Naam) == "" {
		return nil, fmt.Errorf("%w: naam is required", ErrInvalidInput)
	}

	ploeg.OrgID = principal.OrgID
	ploeg.Actief = true
	return s.repo.CreatePloeg(ctx, ploeg)
}

func (s *PlanningService) UpdatePloeg(ctx context.Context, principal model.Principal, ploeg model.Ploeg) error {
	if !principal.KanBeheren() {
		return ErrPermissionDenied
	}
	if strings.TrimSpace(ploeg.Naam) == "" {
		return fmt.Errorf("%w: naam is required", ErrInvalidInput)
	}

	ploeg.OrgID = principal.OrgID
	return s.repo.UpdatePloeg(ctx, ploeg)
}

func (s *PlanningService) ListVoertuigen(ctx context.Context, principal model.Principal) ([]model.Voertuig, error) {
	return s.repo.ListVoertuigen(ctx, principal.OrgID)
}

func (s *PlanningService) CreateVoertuig(ctx context.Context, principal model.Principal, voertuig model.Voertuig) (*model.Voertuig, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(voertuig.Kenteken) == "" {
		return nil, fmt.Errorf("%w: kenteken is required", ErrInvalidInput)
	}

	voertuig.OrgID = principal.OrgID
	voertuig.Kenteken = strings.ToUpper(strings.TrimSpace(voertuig.Kenteken))
	voertuig.Actief = true
	return s.repo.CreateVoertuig(ctx, voertuig)
}

func (s *PlanningService) CreateInzet(ctx context.Context, principal model.Principal, inzet model.ProjectInzet) (*model.ProjectInzet, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}
	if inzet.Datum.IsZero() {
		return nil, fmt.Errorf("%w: datum is required", ErrInvalidInput)
	}

	// Het project moet van dezelfde organisatie zijn.
	if _, err := s.projecten.GetByID(ctx, principal.OrgID, inzet.ProjectID); err != nil {
		return nil, ErrNotFound
	}

	inzet.OrgID = principal.OrgID
	return s.repo.CreateInzet(ctx, inzet)
}

// ListInzet geeft de planning in de periode terug; de to-dag telt mee,
// net als bij de urenregistraties.
func (s *PlanningService) ListInzet(ctx context.Context, principal model.Principal, projectID uuid.UUID, from, to time.Time) ([]model.ProjectInzet, error) {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, fmt.Errorf("%w: ongeldige periode", ErrInvalidInput)
	}
	return s.repo.ListInzet(ctx, principal.OrgID, projectID, dateOnly(from), dateOnly(to).Add(24*time.Hour))
}
