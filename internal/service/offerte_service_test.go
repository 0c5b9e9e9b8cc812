package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/groenvak/offerte-service/internal/calc"
	"github.com/groenvak/offerte-service/internal/config"
	"github.com/groenvak/offerte-service/internal/model"
)

type fakeReferentieStore struct {
	instellingen *model.Instellingen
	normUren     []model.NormUur
	factoren     []model.CorrectieFactor
	producten    []model.Product
}

func (f *fakeReferentieStore) GetInstellingen(ctx context.Context, orgID uuid.UUID) (*model.Instellingen, error) {
	if f.instellingen == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.instellingen, nil
}

func (f *fakeReferentieStore) ListNormUren(ctx context.Context, orgID uuid.UUID) ([]model.NormUur, error) {
	return f.normUren, nil
}

func (f *fakeReferentieStore) ListFactoren(ctx context.Context, orgID uuid.UUID) ([]model.CorrectieFactor, error) {
	return f.factoren, nil
}

func (f *fakeReferentieStore) ListProducten(ctx context.Context, orgID uuid.UUID, alleenActief bool) ([]model.Product, error) {
	return f.producten, nil
}

type fakeOfferteStore struct {
	byID       map[uuid.UUID]model.Offerte
	created    []model.Offerte
	volgnummer int
}

func newFakeOfferteStore() *fakeOfferteStore {
	return &fakeOfferteStore{byID: make(map[uuid.UUID]model.Offerte), volgnummer: 1}
}

func (f *fakeOfferteStore) Create(ctx context.Context, offerte model.Offerte) (*model.Offerte, error) {
	offerte.ID = uuid.New()
	f.byID[offerte.ID] = offerte
	f.created = append(f.created, offerte)
	return &offerte, nil
}

func (f *fakeOfferteStore) Update(ctx context.Context, offerte model.Offerte) error {
	if _, ok := f.byID[offerte.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.byID[offerte.ID] = offerte
	return nil
}

func (f *fakeOfferteStore) GetByID(ctx context.Context, orgID, id uuid.UUID) (*model.Offerte, error) {
	offerte, ok := f.byID[id]
	if !ok || offerte.OrgID != orgID {
		return nil, gorm.ErrRecordNotFound
	}
	return &offerte, nil
}

func (f *fakeOfferteStore) List(ctx context.Context, orgID uuid.UUID, status *model.OfferteStatus) ([]model.Offerte, error) {
	var result []model.Offerte
	for _, offerte := range f.byID {
		if offerte.OrgID != orgID {
			continue
		}
		if status != nil && offerte.Status != *status {
			continue
		}
		result = append(result, offerte)
	}
	return result, nil
}

func (f *fakeOfferteStore) UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status model.OfferteStatus) error {
	offerte, ok := f.byID[id]
	if !ok || offerte.OrgID != orgID {
		return gorm.ErrRecordNotFound
	}
	offerte.Status = status
	f.byID[id] = offerte
	return nil
}

func (f *fakeOfferteStore) VolgendNummer(ctx context.Context, orgID uuid.UUID, jaar int) (int, error) {
	n := f.volgnummer
	f.volgnummer++
	return n, nil
}

type fakeProjectStore struct {
	created []model.Project
	bestaat bool
}

func (f *fakeProjectStore) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	project.ID = uuid.New()
	f.created = append(f.created, project)
	return &project, nil
}

func (f *fakeProjectStore) HasOfferteProject(ctx context.Context, offerteID uuid.UUID) (bool, error) {
	return f.bestaat, nil
}

type fakePDFGenerator struct{}

func (fakePDFGenerator) Generate(offerte model.Offerte) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Offerte: config.OfferteConfig{
			StandaardUurtarief: 45,
			StandaardMargePct:  20,
			StandaardBtwPct:    21,
		},
	}
}

func testReferentieStore(orgID uuid.UUID) *fakeReferentieStore {
	return &fakeReferentieStore{
		instellingen: &model.Instellingen{
			OrgID:                    orgID,
			Uurtarief:                45,
			StandaardMargePercentage: 20,
			BtwPercentage:            21,
		},
		normUren: []model.NormUur{
			{
				ID:             uuid.New(),
				OrgID:          orgID,
				Scope:          model.ScopeGrondwerk,
				TaakKey:        "afgraven",
				Omschrijving:   "Afgraven grond",
				Eenheid:        "m2",
				UrenPerEenheid: 0.5,
				Actief:         true,
			},
		},
		factoren: []model.CorrectieFactor{
			{Dimensie: model.DimensieBereikbaarheid, Waarde: "goed", Factor: 1.0},
			{Dimensie: model.DimensieBereikbaarheid, Waarde: "beperkt", Factor: 1.15},
		},
	}
}

func testInvoer() calc.Invoer {
	return calc.Invoer{
		ScopeSelecties: []calc.ScopeSelectie{
			{
				Scope: model.ScopeGrondwerk,
				Taken: []calc.TaakAantal{{TaakKey: "afgraven", Hoeveelheid: 20}},
			},
		},
		Bereikbaarheid: model.BereikbaarheidBeperkt,
		Achterstand:    model.AchterstandGeen,
	}
}

func planner(orgID uuid.UUID) model.Principal {
	return model.Principal{
		UserID: uuid.New(),
		OrgID:  orgID,
		Naam:   "Jan Planner",
		Role:   model.RolePlanner,
	}
}

func TestOfferteService_Bereken(t *testing.T) {
	orgID := uuid.New()
	svc := NewOfferteService(testReferentieStore(orgID), newFakeOfferteStore(), &fakeProjectStore{}, fakePDFGenerator{}, testConfig())

	result, err := svc.Bereken(context.Background(), planner(orgID), testInvoer(), nil)
	require.NoError(t, err)

	require.Len(t, result.Regels, 1)
	assert.InDelta(t, 517.50, result.Regels[0].Totaal, 0.001)
	assert.InDelta(t, 11.5, result.Totalen.TotaalUren, 0.001)
	assert.InDelta(t, 751.41, result.Totalen.TotaalInclBtw, 0.001)
}

func TestOfferteService_BerekenWeigertMedewerker(t *testing.T) {
	orgID := uuid.New()
	svc := NewOfferteService(testReferentieStore(orgID), newFakeOfferteStore(), &fakeProjectStore{}, fakePDFGenerator{}, testConfig())

	principal := planner(orgID)
	principal.Role = model.RoleMedewerker
	_, err := svc.Bereken(context.Background(), principal, testInvoer(), nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestOfferteService_BerekenValtTerugOpConfigDefaults(t *testing.T) {
	orgID := uuid.New()
	store := testReferentieStore(orgID)
	store.instellingen = nil // organisatie heeft nog niets opgeslagen
	svc := NewOfferteService(store, newFakeOfferteStore(), &fakeProjectStore{}, fakePDFGenerator{}, testConfig())

	result, err := svc.Bereken(context.Background(), planner(orgID), testInvoer(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 751.41, result.Totalen.TotaalInclBtw, 0.001)
}

func TestOfferteService_CreateZetNummerEnConcept(t *testing.T) {
	orgID := uuid.New()
	offerteStore := newFakeOfferteStore()
	svc := NewOfferteService(testReferentieStore(orgID), offerteStore, &fakeProjectStore{}, fakePDFGenerator{}, testConfig())

	offerte, err := svc.Create(context.Background(), planner(orgID), OfferteInput{
		KlantNaam: "Fam. de Vries",
		Invoer:    testInvoer(),
	})
	require.NoError(t, err)

	assert.Equal(t, model.OfferteStatusConcept, offerte.Status)
	assert.Regexp(t, `^OFF-\d{4}-001$`, offerte.Nummer)
	assert.InDelta(t, 751.41, offerte.Totalen.TotaalInclBtw, 0.001)
	require.Len(t, offerteStore.created, 1)
}

func TestOfferteService_CreateVereistKlantNaam(t *testing.T) {
	orgID := uuid.New()
	svc := NewOfferteService(testReferentieStore(orgID), newFakeOfferteStore(), &fakeProjectStore{}, fakePDFGenerator{}, testConfig())

	_, err := svc.Create(context.Background(), planner(orgID), OfferteInput{
		KlantNaam: "  ",
		Invoer:    testInvoer(),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOfferteService_UpdateAlleenConcept(t *testing.T) {
	orgID := uuid.New()
	offerteStore := newFakeOfferteStore()
	svc := NewOfferteService(testReferentieStore(orgID), offerteStore, &fakeProjectStore{}, fakePDFGenerator{}, testConfig())

	offerte, err := svc.Create(context.Background(), planner(orgID), OfferteInput{
		KlantNaam: "Fam. de Vries",
		Invoer:    testInvoer(),
	})
	require.NoError(t, err)

	verzonden := offerte
	verzonden.Status = model.OfferteStatusVerzonden
	offerteStore.byID[offerte.ID] = *verzonden

	_, err = svc.Update(context.Background(), planner(orgID), offerte.ID, OfferteInput{
		KlantNaam: "Fam. de Vries",
		Invoer:    testInvoer(),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOfferteService_StatusovergangenBewaakt(t *testing.T) {
	orgID := uuid.New()
	offerteStore := newFakeOfferteStore()
	svc := NewOfferteService(testReferentieStore(orgID), offerteStore, &fakeProjectStore{}, fakePDFGenerator{}, testConfig())

	offerte, err := svc.Create(context.Background(), planner(orgID), OfferteInput{
		KlantNaam: "Fam. de Vries",
		Invoer:    testInvoer(),
	})
	require.NoError(t, err)

	// concept kan niet direct geaccepteerd worden
	_, err = svc.UpdateStatus(context.Background(), planner(orgID), offerte.ID, model.OfferteStatusGeaccepteerd)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	bijgewerkt, err := svc.UpdateStatus(context.Background(), planner(orgID), offerte.ID, model.OfferteStatusVerzonden)
	require.NoError(t, err)
	assert.Equal(t, model.OfferteStatusVerzonden, bijgewerkt.Status)

	// verzonden kan niet terug naar concept
	_, err = svc.UpdateStatus(context.Background(), planner(orgID), offerte.ID, model.OfferteStatusConcept)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOfferteService_AcceptatieMaaktProject(t *testing.T) {
	orgID := uuid.New()
	offerteStore := newFakeOfferteStore()
	projectStore := &fakeProjectStore{}
	svc := NewOfferteService(testReferentieStore(orgID), offerteStore, projectStore, fakePDFGenerator{}, testConfig())

	offerte, err := svc.Create(context.Background(), planner(orgID), OfferteInput{
		KlantNaam: "Fam. de Vries",
		Invoer:    testInvoer(),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), planner(orgID), offerte.ID, model.OfferteStatusVerzonden)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), planner(orgID), offerte.ID, model.OfferteStatusGeaccepteerd)
	require.NoError(t, err)

	require.Len(t, projectStore.created, 1)
	project := projectStore.created[0]
	assert.Equal(t, model.ProjectStatusGepland, project.Status)
	assert.Equal(t, "Fam. de Vries", project.KlantNaam)
	require.NotNil(t, project.OfferteID)
	assert.Equal(t, offerte.ID, *project.OfferteID)
	assert.InDelta(t, offerte.Totalen.TotaalUren, project.BegroteUren, 0.001)
}

func TestOfferteService_AcceptatieMaaktGeenDubbelProject(t *testing.T) {
	orgID := uuid.New()
	offerteStore := newFakeOfferteStore()
	projectStore := &fakeProjectStore{bestaat: true}
	svc := NewOfferteService(testReferentieStore(orgID), offerteStore, projectStore, fakePDFGenerator{}, testConfig())

	offerte, err := svc.Create(context.Background(), planner(orgID), OfferteInput{
		KlantNaam: "Fam. de Vries",
		Invoer:    testInvoer(),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), planner(orgID), offerte.ID, model.OfferteStatusVerzonden)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), planner(orgID), offerte.ID, model.OfferteStatusGeaccepteerd)
	require.NoError(t, err)

	assert.Empty(t, projectStore.created)
}

func TestOfferteService_GetAndereOrganisatie(t *testing.T) {
	orgID := uuid.New()
	offerteStore := newFakeOfferteStore()
	svc := NewOfferteService(testReferentieStore(orgID), offerteStore, &fakeProjectStore{}, fakePDFGenerator{}, testConfig())

	offerte, err := svc.Create(context.Background(), planner(orgID), OfferteInput{
		KlantNaam: "Fam. de Vries",
		Invoer:    testInvoer(),
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), planner(uuid.New()), offerte.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOfferteService_GeneratePDF(t *testing.T) {
	orgID := uuid.New()
	offerteStore := newFakeOfferteStore()
	svc := NewOfferteService(testReferentieStore(orgID), offerteStore, &fakeProjectStore{}, fakePDFGenerator{}, testConfig())

	offerte, err := svc.Create(context.Background(), planner(orgID), OfferteInput{
		KlantNaam: "Fam. de Vries",
		Invoer:    testInvoer(),
	})
	require.NoError(t, err)

	result, err := svc.GeneratePDF(context.Background(), planner(orgID), offerte.ID)
	require.NoError(t, err)
	assert.Equal(t, "off-"+offerte.Nummer[4:]+".pdf", result.FileName)
	assert.NotEmpty(t, result.Content)
}
