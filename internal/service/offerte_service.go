package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/groenvak/offerte-service/internal/calc"
	"github.com/groenvak/offerte-service/internal/config"
	"github.com/groenvak/offerte-service/internal/model"
)

type ReferentieStore interface {
	GetInstellingen(ctx context.Context, orgID uuid.UUID) (*model.Instellingen, error)
	ListNormUren(ctx context.Context, orgID uuid.UUID) ([]model.NormUur, error)
	ListFactoren(ctx context.Context, orgID uuid.UUID) ([]model.CorrectieFactor, error)
	ListProducten(ctx context.Context, orgID uuid.UUID, alleenActief bool) ([]model.Product, error)
}

type OfferteStore interface {
	Create(ctx context.Context, offerte model.Offerte) (*model.Offerte, error)
	Update(ctx context.Context, offerte model.Offerte) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*model.Offerte, error)
	List(ctx context.Context, orgID uuid.UUID, status *model.OfferteStatus) ([]model.Offerte, error)
	UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status model.OfferteStatus) error
	VolgendNummer(ctx context.Context, orgID uuid.UUID, jaar int) (int, error)
}

type ProjectStore interface {
	Create(ctx context.Context, project model.Project) (*model.Project, error)
	HasOfferteProject(ctx context.Context, offerteID uuid.UUID) (bool, error)
}

type PDFGenerator interface {
	Generate(offerte model.Offerte) ([]byte, error)
}

type OfferteService struct {
	referentie ReferentieStore
	offertes   OfferteStore
	projecten  ProjectStore
	pdf        PDFGenerator
	cfg        *config.Config
}

func NewOfferteService(referentie ReferentieStore, offertes OfferteStore, projecten ProjectStore, pdf PDFGenerator, cfg *config.Config) *OfferteService {
	return &OfferteService{
		referentie: referentie,
		offertes:   offertes,
		projecten:  projecten,
		pdf:        pdf,
		cfg:        cfg,
	}
}

type OfferteInput struct {
	KlantNaam       string
	KlantAdres      string
	KlantEmail      string
	Invoer          calc.Invoer
	MargePercentage *float64 // nil: standaardmarge uit de instellingen
}

type BerekenResult struct {
	Regels  []model.OfferteRegel `json:"regels"`
	Totalen model.Totalen        `json:"totalen"`
}

type PDFResult struct {
	FileName string
	Content  []byte
}

// LoadReferentie haalt de vier referentietabellen parallel op. Organisaties
// zonder opgeslagen instellingen rekenen met de service-defaults.
func (s *OfferteService) LoadReferentie(ctx context.Context, orgID uuid.UUID) (calc.Referentie, error) {
	var ref calc.Referentie

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		instellingen, err := s.referentie.GetInstellingen(gCtx, orgID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ref.Instellingen = model.Instellingen{
				OrgID:                    orgID,
				Uurtarief:                s.cfg.Offerte.StandaardUurtarief,
				StandaardMargePercentage: s.cfg.Offerte.StandaardMargePct,
				BtwPercentage:            s.cfg.Offerte.StandaardBtwPct,
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("instellingen: %w", err)
		}
		ref.Instellingen = *instellingen
		return nil
	})
	g.Go(func() error {
		normUren, err := s.referentie.ListNormUren(gCtx, orgID)
		if err != nil {
			return fmt.Errorf("normuren: %w", err)
		}
		ref.NormUren = normUren
		return nil
	})
	g.Go(func() error {
		factoren, err := s.referentie.ListFactoren(gCtx, orgID)
		if err != nil {
			return fmt.Errorf("correctiefactoren: %w", err)
		}
		ref.Factoren = factoren
		return nil
	})
	g.Go(func() error {
		producten, err := s.referentie.ListProducten(gCtx, orgID, true)
		if err != nil {
			return fmt.Errorf("producten: %w", err)
		}
		ref.Producten = producten
		return nil
	})

	if err := g.Wait(); err != nil {
		return calc.Referentie{}, err
	}
	return ref, nil
}

// Bereken prijst de invoer zonder iets op te slaan. Dit is het endpoint
// achter de herberekening bij elke formulierwijziging.
func (s *OfferteService) Bereken(ctx context.Context, principal model.Principal, invoer calc.Invoer, margeOverride *float64) (*BerekenResult, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}

	ref, err := s.LoadReferentie(ctx, principal.OrgID)
	if err != nil {
		return nil, err
	}

	regels, err := calc.BerekenRegels(invoer, ref)
	if err != nil {
		return nil, err
	}

	marge := ref.Instellingen.StandaardMargePercentage
	if margeOverride != nil {
		marge = *margeOverride
	}
	totalen, err := calc.BerekenTotalen(regels, marge, ref.Instellingen.BtwPercentage)
	if err != nil {
		return nil, err
	}

	return &BerekenResult{Regels: regels, Totalen: totalen}, nil
}

// Create berekent de offerte en slaat het resultaat als snapshot op; de
// rekenkern zelf schrijft nooit naar de database.
func (s *OfferteService) Create(ctx context.Context, principal model.Principal, input OfferteInput) (*model.Offerte, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.KlantNaam) == "" {
		return nil, fmt.Errorf("%w: klant_naam is required", ErrInvalidInput)
	}

	ref, err := s.LoadReferentie(ctx, principal.OrgID)
	if err != nil {
		return nil, err
	}

	regels, totalen, marge, err := s.prijs(input, ref)
	if err != nil {
		return nil, err
	}

	jaar := time.Now().Year()
	volgnummer, err := s.offertes.VolgendNummer(ctx, principal.OrgID, jaar)
	if err != nil {
		return nil, err
	}

	offerte := model.Offerte{
		OrgID:           principal.OrgID,
		Nummer:          fmt.Sprintf("OFF-%d-%03d", jaar, volgnummer),
		KlantNaam:       strings.TrimSpace(input.KlantNaam),
		KlantAdres:      strings.TrimSpace(input.KlantAdres),
		KlantEmail:      strings.TrimSpace(input.KlantEmail),
		Status:          model.OfferteStatusConcept,
		Bereikbaarheid:  input.Invoer.Bereikbaarheid,
		Achterstand:     input.Invoer.Achterstand,
		MargePercentage: marge,
		BtwPercentage:   ref.Instellingen.BtwPercentage,
		Regels:          regels,
		Totalen:         totalen,
		CreatedByUserID: principal.UserID,
	}
	return s.offertes.Create(ctx, offerte)
}

// Update herberekent en vervangt de snapshot. Alleen concepten zijn nog
// aanpasbaar; een verzonden of beoordeelde offerte is bevroren.
func (s *OfferteService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input OfferteInput) (*model.Offerte, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}

	bestaand, err := s.offertes.GetByID(ctx, principal.OrgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if bestaand.Status != model.OfferteStatusConcept {
		return nil, fmt.Errorf("%w: offerte %s is %s", ErrInvalidStatus, bestaand.Nummer, bestaand.Status)
	}

	ref, err := s.LoadReferentie(ctx, principal.OrgID)
	if err != nil {
		return nil, err
	}

	regels, totalen, marge, err := s.prijs(input, ref)
	if err != nil {
		return nil, err
	}

	bestaand.KlantNaam = strings.TrimSpace(input.KlantNaam)
	bestaand.KlantAdres = strings.TrimSpace(input.KlantAdres)
	bestaand.KlantEmail = strings.TrimSpace(input.KlantEmail)
	bestaand.Bereikbaarheid = input.Invoer.Bereikbaarheid
	bestaand.Achterstand = input.Invoer.Achterstand
	bestaand.MargePercentage = marge
	bestaand.BtwPercentage = ref.Instellingen.BtwPercentage
	bestaand.Regels = regels
	bestaand.Totalen = totalen

	if err := s.offertes.Update(ctx, *bestaand); err != nil {
		return nil, err
	}
	return bestaand, nil
}

func (s *OfferteService) prijs(input OfferteInput, ref calc.Referentie) ([]model.OfferteRegel, model.Totalen, float64, error) {
	regels, err := calc.BerekenRegels(input.Invoer, ref)
	if err != nil {
		return nil, model.Totalen{}, 0, err
	}

	marge := ref.Instellingen.StandaardMargePercentage
	if input.MargePercentage != nil {
		marge = *input.MargePercentage
	}
	totalen, err := calc.BerekenTotalen(regels, marge, ref.Instellingen.BtwPercentage)
	if err != nil {
		return nil, model.Totalen{}, 0, err
	}
	return regels, totalen, marge, nil
}

func (s *OfferteService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Offerte, error) {
	offerte, err := s.offertes.GetByID(ctx, principal.OrgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return offerte, nil
}

func (s *OfferteService) List(ctx context.Context, principal model.Principal, status *model.OfferteStatus) ([]model.Offerte, error) {
	return s.offertes.List(ctx, principal.OrgID, status)
}

var offerteOvergangen = map[model.OfferteStatus][]model.OfferteStatus{
	model.OfferteStatusConcept:   {model.OfferteStatusVerzonden},
	model.OfferteStatusVerzonden: {model.OfferteStatusGeaccepteerd, model.OfferteStatusAfgewezen},
}

// UpdateStatus voert de statusovergang uit; acceptatie maakt eenmalig een
// project aan met de begrote uren uit de offerte.
func (s *OfferteService) UpdateStatus(ctx context.Context, principal model.Principal, id uuid.UUID, status model.OfferteStatus) (*model.Offerte, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}

	offerte, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if !overgangToegestaan(offerte.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, offerte.Status, status)
	}

	if err := s.offertes.UpdateStatus(ctx, principal.OrgID, id, status); err != nil {
		return nil, err
	}
	offerte.Status = status

	if status == model.OfferteStatusGeaccepteerd {
		if err := s.maakProject(ctx, offerte); err != nil {
			return nil, err
		}
	}
	return offerte, nil
}

func overgangToegestaan(van, naar model.OfferteStatus) bool {
	for _, toegestaan := range offerteOvergangen[van] {
		if toegestaan == naar {
			return true
		}
	}
	return false
}

func (s *OfferteService) maakProject(ctx context.Context, offerte *model.Offerte) error {
	bestaat, err := s.projecten.HasOfferteProject(ctx, offerte.ID)
	if err != nil {
		return err
	}
	if bestaat {
		return nil
	}

	_, err = s.projecten.Create(ctx, model.Project{
		OrgID:       offerte.OrgID,
		OfferteID:   &offerte.ID,
		Naam:        fmt.Sprintf("%s %s", offerte.Nummer, offerte.KlantNaam),
		KlantNaam:   offerte.KlantNaam,
		Status:      model.ProjectStatusGepland,
		BegroteUren: offerte.Totalen.TotaalUren,
	})
	return err
}

func (s *OfferteService) GeneratePDF(ctx context.Context, principal model.Principal, id uuid.UUID) (*PDFResult, error) {
	if !principal.KanBeheren() {
		return nil, ErrPermissionDenied
	}

	offerte, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(*offerte)
	if err != nil {
		return nil, err
	}

	return &PDFResult{
		FileName: fmt.Sprintf("%s.pdf", strings.ToLower(offerte.Nummer)),
		Content:  content,
	}, nil
}
