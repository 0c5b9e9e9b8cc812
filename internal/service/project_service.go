package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/groenvak/offerte-service/internal/model"
	"github.com/groenvak/offerte-service/internal/repository"
)

type ProjectService struct {
	repo *repository.ProjectRepository
}

func NewProjectService(repo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) Create(ctx context.Context, principal model.Principal, project model.Project) (*model.Project, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(project.Naam) == "" {
		return nil, fmt.Errorf("%w: naam is required", ErrInvalidInput)
	}
	if project.BegroteUren < 0 {
		return nil, fmt.Errorf("%w: begrote_uren mag niet negatief zijn", ErrInvalidInput)
	}
	if project.StartDatum != nil && project.EindDatum != nil && project.EindDatum.Before(*project.StartDatum) {
		return nil, fmt.Errorf("%w: eind_datum ligt voor start_datum", ErrInvalidInput)
	}

	project.OrgID = principal.OrgID
	project.Status = model.ProjectStatusGepland
	return s.repo.Create(ctx, project)
}

func (s *ProjectService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.GetByID(ctx, principal.OrgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, principal model.Principal, status *model.ProjectStatus) ([]model.Project, error) {
	return s.repo.List(ctx, principal.OrgID, status)
}

var projectOvergangen = map[model.ProjectStatus][]model.ProjectStatus{
	model.ProjectStatusGepland:      {model.ProjectStatusInUitvoering},
	model.ProjectStatusInUitvoering: {model.ProjectStatusAfgerond},
}

func (s *ProjectService) UpdateStatus(ctx context.Context, principal model.Principal, id uuid.UUID, status model.ProjectStatus) (*model.Project, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}

	project, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	toegestaan := false
	for _, naar := range projectOvergangen[project.Status] {
		if naar == status {
			toegestaan = true
			break
		}
	}
	if !toegestaan {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, project.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, principal.OrgID, id, status); err != nil {
		return nil, err
	}
	project.Status = status
	return project, nil
}
