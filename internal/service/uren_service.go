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

type ExcelGenerator interface {
	Generate(rapport model.UrenRapport) ([]byte, error)
}

type UrenService struct {
	repo      *repository.UrenRepository
	projecten *repository.ProjectRepository
	excel     ExcelGenerator
}

func NewUrenService(repo *repository.UrenRepository, projecten *repository.ProjectRepository, excel ExcelGenerator) *UrenService {
	return &UrenService{repo: repo, projecten: projecten, excel: excel}
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// Registreer legt gewerkte uren vast. Medewerkers registreren op hun eigen
// naam; planners en admins mogen voor iedereen boeken.
func (s *UrenService) Registreer(ctx context.Context, principal model.Principal, registratie model.UrenRegistratie) (*model.UrenRegistratie, error) {
	if registratie.Uren <= 0 || registratie.Uren > 24 {
		return nil, fmt.Errorf("%w: uren moet tussen 0 en 24 liggen", ErrInvalidInput)
	}
	if registratie.Datum.IsZero() {
		return nil, fmt.Errorf("%w: datum is required", ErrInvalidInput)
	}

	if _, err := s.projecten.GetByID(ctx, principal.OrgID, registratie.ProjectID); err != nil {
		return nil, ErrNotFound
	}

	if principal.IsMedewerker() || strings.TrimSpace(registratie.Medewerker) == "" {
		registratie.Medewerker = principal.Naam
		registratie.UserID = principal.UserID
	}
	if registratie.UserID == uuid.Nil {
		registratie.UserID = principal.UserID
	}
	registratie.OrgID = principal.OrgID
	return s.repo.Create(ctx, registratie)
}

func (s *UrenService) List(ctx context.Context, principal model.Principal, projectID *uuid.UUID, from, to time.Time) ([]model.UrenRegistratie, error) {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, fmt.Errorf("%w: ongeldige periode", ErrInvalidInput)
	}

	registraties, err := s.repo.List(ctx, principal.OrgID, projectID, dateOnly(from), dateOnly(to).Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	// Medewerkers zien alleen hun eigen registraties.
	if principal.IsMedewerker() {
		eigen := registraties[:0]
		for _, registratie := range registraties {
			if registratie.UserID == principal.UserID {
				eigen = append(eigen, registratie)
			}
		}
		registraties = eigen
	}
	return registraties, nil
}

// Export bouwt het urenrapport voor de periode en genereert het Excel-bestand.
func (s *UrenService) Export(ctx context.Context, principal model.Principal, from, to time.Time) (*ExportResult, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, fmt.Errorf("%w: ongeldige periode", ErrInvalidInput)
	}

	periodStart := dateOnly(from)
	periodEnd := dateOnly(to)
	endExclusive := periodEnd.Add(24 * time.Hour)

	projecten, err := s.repo.SumPerProject(ctx, principal.OrgID, periodStart, endExclusive)
	if err != nil {
		return nil, err
	}

	totaal := 0.0
	for i := range projecten {
		registraties, err := s.repo.List(ctx, principal.OrgID, &projecten[i].ProjectID, periodStart, endExclusive)
		if err != nil {
			return nil, err
		}
		projecten[i].Registraties = registraties
		totaal += projecten[i].GewerkteUren
	}

	rapport := model.UrenRapport{
		OrgID:       principal.OrgID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		TotaalUren:  totaal,
		Projecten:   projecten,
	}

	content, err := s.excel.Generate(rapport)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("uren-%s-%s.xlsx",
		rapport.PeriodStart.Format("20060102"), rapport.PeriodEnd.Format("20060102"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
