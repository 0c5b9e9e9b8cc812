package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/groenvak/offerte-service/internal/config"
	"github.com/groenvak/offerte-service/internal/model"
	"github.com/groenvak/offerte-service/internal/repository"
)

// ReferentieService beheert de tarieftabellen waar de rekenkern op draait.
// Schrijven is voorbehouden aan admins; lezen aan iedereen die offertes
// mag beheren.
type ReferentieService struct {
	repo *repository.ReferentieRepository
	cfg  *config.Config
}

func NewReferentieService(repo *repository.ReferentieRepository, cfg *config.Config) *ReferentieService {
	return &ReferentieService{repo: repo, cfg: cfg}
}

func (s *ReferentieService) GetInstellingen(ctx context.Context, principal model.Principal) (*model.Instellingen, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}

	instellingen, err := s.repo.GetInstellingen(ctx, principal.OrgID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Instellingen{
			OrgID:                    principal.OrgID,
			Uurtarief:                s.cfg.Offerte.StandaardUurtarief,
			StandaardMargePercentage: s.cfg.Offerte.StandaardMargePct,
			BtwPercentage:            s.cfg.Offerte.StandaardBtwPct,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return instellingen, nil
}

func (s *ReferentieService) UpdateInstellingen(ctx context.Context, principal model.Principal, instellingen model.Instellingen) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if instellingen.Uurtarief < 0 {
		return fmt.Errorf("%w: uurtarief mag niet negatief zijn", ErrInvalidInput)
	}
	if instellingen.StandaardMargePercentage < 0 || instellingen.StandaardMargePercentage > 100 {
		return fmt.Errorf("%w: margepercentage moet tussen 0 en 100 liggen", ErrInvalidInput)
	}
	if instellingen.BtwPercentage < 0 || instellingen.BtwPercentage > 100 {
		return fmt.Errorf("%w: btw-percentage moet tussen 0 en 100 liggen", ErrInvalidInput)
	}

	instellingen.OrgID = principal.OrgID
	return s.repo.UpsertInstellingen(ctx, instellingen)
}

func (s *ReferentieService) ListNormUren(ctx context.Context, principal model.Principal) ([]model.NormUur, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}
	return s.repo.ListNormUren(ctx, principal.OrgID)
}

func (s *ReferentieService) UpsertNormUur(ctx context.Context, principal model.Principal, norm model.NormUur) (*model.NormUur, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if !norm.Scope.Geldig() {
		return nil, fmt.Errorf("%w: onbekende scope %q", ErrInvalidInput, norm.Scope)
	}
	norm.TaakKey = strings.TrimSpace(norm.TaakKey)
	if norm.TaakKey == "" {
		return nil, fmt.Errorf("%w: taak_key is required", ErrInvalidInput)
	}
	if norm.UrenPerEenheid <= 0 {
		return nil, fmt.Errorf("%w: uren_per_eenheid moet groter dan nul zijn", ErrInvalidInput)
	}

	norm.OrgID = principal.OrgID
	return s.repo.UpsertNormUur(ctx, norm)
}

func (s *ReferentieService) ListFactoren(ctx context.Context, principal model.Principal) ([]model.CorrectieFactor, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}
	return s.repo.ListFactoren(ctx, principal.OrgID)
}

func (s *ReferentieService) UpsertFactor(ctx context.Context, principal model.Principal, factor model.CorrectieFactor) (*model.CorrectieFactor, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if factor.Factor <= 0 {
		return nil, fmt.Errorf("%w: factor moet groter dan nul zijn", ErrInvalidInput)
	}

	switch factor.Dimensie {
	case model.DimensieBereikbaarheid:
		if !model.Bereikbaarheid(factor.Waarde).Geldig() {
			return nil, fmt.Errorf("%w: onbekende bereikbaarheid %q", ErrInvalidInput, factor.Waarde)
		}
	case model.DimensieAchterstand:
		ernst := model.AchterstandErnst(factor.Waarde)
		if !ernst.Geldig() || ernst == model.AchterstandGeen {
			return nil, fmt.Errorf("%w: onbekende achterstand %q", ErrInvalidInput, factor.Waarde)
		}
	default:
		return nil, fmt.Errorf("%w: onbekende dimensie %q", ErrInvalidInput, factor.Dimensie)
	}

	factor.OrgID = principal.OrgID
	return s.repo.UpsertFactor(ctx, factor)
}

func (s *ReferentieService) ListProducten(ctx context.Context, principal model.Principal, alleenActief bool) ([]model.Product, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}
	return s.repo.ListProducten(ctx, principal.OrgID, alleenActief)
}

func (s *ReferentieService) CreateProduct(ctx context.Context, principal model.Principal, product model.Product) (*model.Product, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if err := valideerProduct(product); err != nil {
		return nil, err
	}

	product.OrgID = principal.OrgID
	product.Actief = true
	return s.repo.CreateProduct(ctx, product)
}

func (s *ReferentieService) UpdateProduct(ctx context.Context, principal model.Principal, product model.Product) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := valideerProduct(product); err != nil {
		return err
	}

	product.OrgID = principal.OrgID
	err := s.repo.UpdateProduct(ctx, product)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func valideerProduct(product model.Product) error {
	if strings.TrimSpace(product.Naam) == "" {
		return fmt.Errorf("%w: naam is required", ErrInvalidInput)
	}
	if product.PrijsPerEenheid < 0 {
		return fmt.Errorf("%w: prijs mag niet negatief zijn", ErrInvalidInput)
	}
	return nil
}
