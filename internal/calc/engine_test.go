package calc

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groenvak/offerte-service/internal/model"
)

var (
	tegelID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	zandID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func testReferentie() Referentie {
	return Referentie{
		NormUren: []model.NormUur{
			{Scope: model.ScopeGrondwerk, TaakKey: "afgraven", Omschrijving: "Afgraven grond", Eenheid: "m2", UrenPerEenheid: 0.5, Actief: true},
			{Scope: model.ScopeGrondwerk, TaakKey: "egaliseren", Omschrijving: "Egaliseren", Eenheid: "m2", UrenPerEenheid: 0.2, Actief: true},
			{Scope: model.ScopeBestrating, TaakKey: "leggen", Omschrijving: "Bestrating leggen", Eenheid: "m2", UrenPerEenheid: 0.75, Actief: true},
		},
		Factoren: []model.CorrectieFactor{
			{Dimensie: model.DimensieBereikbaarheid, Waarde: "goed", Factor: 1.0},
			{Dimensie: model.DimensieBereikbaarheid, Waarde: "beperkt", Factor: 1.15},
			{Dimensie: model.DimensieBereikbaarheid, Waarde: "slecht", Factor: 1.25},
			{Dimensie: model.DimensieAchterstand, Waarde: "licht", Factor: 1.1},
			{Dimensie: model.DimensieAchterstand, Waarde: "ernstig", Factor: 1.3},
		},
		Producten: []model.Product{
			{ID: tegelID, Naam: "Betontegel 60x60", Eenheid: "stuk", PrijsPerEenheid: 4.5, Actief: true},
			{ID: zandID, Naam: "Straatzand", Eenheid: "m3", PrijsPerEenheid: 32.0, Actief: false},
		},
		Instellingen: model.Instellingen{
			Uurtarief:                45,
			StandaardMargePercentage: 20,
			BtwPercentage:            21,
		},
	}
}

func TestBerekenRegels_ScenarioGrondwerk(t *testing.T) {
	// 20 m2 afgraven à 0.5 uur, bereikbaarheid beperkt (1.15), €45/uur.
	invoer := Invoer{
		ScopeSelecties: []ScopeSelectie{
			{Scope: model.ScopeGrondwerk, Taken: []TaakAantal{{TaakKey: "afgraven", Hoeveelheid: 20}}},
		},
		Bereikbaarheid: model.BereikbaarheidBeperkt,
		Achterstand:    model.AchterstandGeen,
	}

	regels, err := BerekenRegels(invoer, testReferentie())
	require.NoError(t, err)
	require.Len(t, regels, 1)

	assert.Equal(t, model.RegelTypeArbeid, regels[0].Type)
	assert.Equal(t, "Afgraven grond", regels[0].Omschrijving)
	assert.Equal(t, "uur", regels[0].Eenheid)
	assert.InDelta(t, 11.5, regels[0].Hoeveelheid, 0.001)
	assert.InDelta(t, 45.0, regels[0].PrijsPerEenheid, 0.001)
	assert.InDelta(t, 517.50, regels[0].Totaal, 0.001)

	totalen, err := BerekenTotalen(regels, 20, 21)
	require.NoError(t, err)
	assert.InDelta(t, 517.50, totalen.Subtotaal, 0.001)
	assert.InDelta(t, 103.50, totalen.Marge, 0.001)
	assert.InDelta(t, 621.00, totalen.TotaalExBtw, 0.001)
	assert.InDelta(t, 130.41, totalen.Btw, 0.001)
	assert.InDelta(t, 751.41, totalen.TotaalInclBtw, 0.001)
	assert.InDelta(t, 11.5, totalen.TotaalUren, 0.001)
}

func TestBerekenRegels_Deterministisch(t *testing.T) {
	invoer := Invoer{
		ScopeSelecties: []ScopeSelectie{
			{
				Scope:      model.ScopeGrondwerk,
				Taken:      []TaakAantal{{TaakKey: "afgraven", Hoeveelheid: 12}, {TaakKey: "egaliseren", Hoeveelheid: 30}},
				Materialen: []MateriaalAantal{{ProductID: tegelID, Hoeveelheid: 80}},
			},
			{Scope: model.ScopeBestrating, Taken: []TaakAantal{{TaakKey: "leggen", Hoeveelheid: 25}}},
		},
		Bereikbaarheid: model.BereikbaarheidSlecht,
		Achterstand:    model.AchterstandLicht,
	}

	eerste, err := BerekenRegels(invoer, testReferentie())
	require.NoError(t, err)
	tweede, err := BerekenRegels(invoer, testReferentie())
	require.NoError(t, err)

	assert.Equal(t, eerste, tweede)
}

func TestBerekenRegels_DubbeleTaakKrijgtEigenID(t *testing.T) {
	// Dezelfde taak twee keer in één scope blijft twee aparte regels
	// met verschillende IDs, en de herberekening blijft deterministisch.
	invoer := Invoer{
		ScopeSelecties: []ScopeSelectie{
			{Scope: model.ScopeGrondwerk, Taken: []TaakAantal{
				{TaakKey: "afgraven", Hoeveelheid: 5},
				{TaakKey: "afgraven", Hoeveelheid: 10},
			}},
		},
		Bereikbaarheid: model.BereikbaarheidGoed,
		Achterstand:    model.AchterstandGeen,
	}

	eerste, err := BerekenRegels(invoer, testReferentie())
	require.NoError(t, err)
	require.Len(t, eerste, 2)
	assert.NotEqual(t, eerste[0].ID, eerste[1].ID)
	assert.InDelta(t, 2.5, eerste[0].Hoeveelheid, 0.001)
	assert.InDelta(t, 5.0, eerste[1].Hoeveelheid, 0.001)

	tweede, err := BerekenRegels(invoer, testReferentie())
	require.NoError(t, err)
	assert.Equal(t, eerste, tweede)
}

func TestBerekenRegels_Volgorde(t *testing.T) {
	// Scopevolgorde van de invoer, daarbinnen taken vóór materialen.
	invoer := Invoer{
		ScopeSelecties: []ScopeSelectie{
			{Scope: model.ScopeBestrating, Taken: []TaakAantal{{TaakKey: "leggen", Hoeveelheid: 10}}, Materialen: []MateriaalAantal{{ProductID: tegelID, Hoeveelheid: 40}}},
			{Scope: model.ScopeGrondwerk, Taken: []TaakAantal{{TaakKey: "egaliseren", Hoeveelheid: 5}, {TaakKey: "afgraven", Hoeveelheid: 5}}},
		},
		Bereikbaarheid: model.BereikbaarheidGoed,
		Achterstand:    model.AchterstandGeen,
	}

	regels, err := BerekenRegels(invoer, testReferentie())
	require.NoError(t, err)
	require.Len(t, regels, 4)

	assert.Equal(t, "Bestrating leggen", regels[0].Omschrijving)
	assert.Equal(t, "Betontegel 60x60", regels[1].Omschrijving)
	assert.Equal(t, "Egaliseren", regels[2].Omschrijving)
	assert.Equal(t, "Afgraven grond", regels[3].Omschrijving)
}

func TestBerekenRegels_FactorenComponerenMultiplicatief(t *testing.T) {
	ref := testReferentie()
	ref.Factoren = []model.CorrectieFactor{
		{Dimensie: model.DimensieBereikbaarheid, Waarde: "slecht", Factor: 1.25},
		{Dimensie: model.DimensieAchterstand, Waarde: "licht", Factor: 1.1},
	}
	ref.NormUren = []model.NormUur{
		{Scope: model.ScopeGazon, TaakKey: "maaien", Omschrijving: "Maaien", Eenheid: "m2", UrenPerEenheid: 1.0, Actief: true},
	}

	invoer := Invoer{
		ScopeSelecties: []ScopeSelectie{
			{Scope: model.ScopeGazon, Taken: []TaakAantal{{TaakKey: "maaien", Hoeveelheid: 10}}},
		},
		Bereikbaarheid: model.BereikbaarheidSlecht,
		Achterstand:    model.AchterstandLicht,
	}

	regels, err := BerekenRegels(invoer, ref)
	require.NoError(t, err)
	require.Len(t, regels, 1)

	// 10 * 1.25 * 1.1 = 13.75, niet 10 * (1.25 + 1.1 - 1) = 13.5.
	assert.InDelta(t, 13.75, regels[0].Hoeveelheid, 0.001)
}

func TestBerekenRegels_InactiefProductOvergeslagen(t *testing.T) {
	invoer := Invoer{
		ScopeSelecties: []ScopeSelectie{
			{Scope: model.ScopeBestrating, Materialen: []MateriaalAantal{
				// zandID is inactief, de tweede ID is onbekend; beide vallen weg.
				{ProductID: zandID, Hoeveelheid: 2},
				{ProductID: uuid.New(), Hoeveelheid: 1},
				{ProductID: tegelID, Hoeveelheid: 10},
			}},
		},
		Bereikbaarheid: model.BereikbaarheidGoed,
		Achterstand:    model.AchterstandGeen,
	}

	regels, err := BerekenRegels(invoer, testReferentie())
	require.NoError(t, err)
	require.Len(t, regels, 1)
	assert.Equal(t, "Betontegel 60x60", regels[0].Omschrijving)
	assert.InDelta(t, 45.0, regels[0].Totaal, 0.001)
}

func TestBerekenRegels_OntbrekendNormuurIsFout(t *testing.T) {
	invoer := Invoer{
		ScopeSelecties: []ScopeSelectie{
			{Scope: model.ScopeGazon, Taken: []TaakAantal{{TaakKey: "bezanden", Hoeveelheid: 3}}},
		},
		Bereikbaarheid: model.BereikbaarheidGoed,
		Achterstand:    model.AchterstandGeen,
	}

	_, err := BerekenRegels(invoer, testReferentie())
	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "normuur", missing.Tabel)
	assert.Equal(t, "gazon/bezanden", missing.Key)
}

func TestBerekenRegels_OntbrekendeFactorIsFout(t *testing.T) {
	ref := testReferentie()
	ref.Factoren = ref.Factoren[:2] // geen "slecht", geen achterstandsfactoren

	invoer := Invoer{
		ScopeSelecties: []ScopeSelectie{
			{Scope: model.ScopeGrondwerk, Taken: []TaakAantal{{TaakKey: "afgraven", Hoeveelheid: 1}}},
		},
		Bereikbaarheid: model.BereikbaarheidGoed,
		Achterstand:    model.AchterstandErnstig,
	}

	_, err := BerekenRegels(invoer, ref)
	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "correctiefactor", missing.Tabel)
	assert.Equal(t, "achterstand/ernstig", missing.Key)
}

func TestBerekenRegels_OngeldigeInvoer(t *testing.T) {
	tests := []struct {
		naam   string
		invoer Invoer
	}{
		{
			naam: "negatieve hoeveelheid",
			invoer: Invoer{
				ScopeSelecties: []ScopeSelectie{
					{Scope: model.ScopeGrondwerk, Taken: []TaakAantal{{TaakKey: "afgraven", Hoeveelheid: -1}}},
				},
				Bereikbaarheid: model.BereikbaarheidGoed,
				Achterstand:    model.AchterstandGeen,
			},
		},
		{
			naam: "onbekende scope",
			invoer: Invoer{
				ScopeSelecties: []ScopeSelectie{
					{Scope: "zwembad", Taken: []TaakAantal{{TaakKey: "graven", Hoeveelheid: 1}}},
				},
				Bereikbaarheid: model.BereikbaarheidGoed,
				Achterstand:    model.AchterstandGeen,
			},
		},
		{
			naam: "onbekende bereikbaarheid",
			invoer: Invoer{
				Bereikbaarheid: "matig",
				Achterstand:    model.AchterstandGeen,
			},
		},
		{
			naam: "onbekende achterstand",
			invoer: Invoer{
				Bereikbaarheid: model.BereikbaarheidGoed,
				Achterstand:    "zwaar",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.naam, func(t *testing.T) {
			_, err := BerekenRegels(tc.invoer, testReferentie())
			var invalid *InvalidInputError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestBerekenTotalen_Additiviteit(t *testing.T) {
	regels := []model.OfferteRegel{
		{Type: model.RegelTypeArbeid, Hoeveelheid: 8.5, Totaal: 382.50},
		{Type: model.RegelTypeMateriaal, Totaal: 120.33},
		{Type: model.RegelTypeArbeid, Hoeveelheid: 2.25, Totaal: 101.25},
		{Type: model.RegelTypeMateriaal, Totaal: 48.90},
	}

	totalen, err := BerekenTotalen(regels, 15, 21)
	require.NoError(t, err)

	assert.InDelta(t, totalen.Subtotaal, totalen.Materiaalkosten+totalen.Arbeidskosten, 0.01)
	assert.InDelta(t, totalen.TotaalExBtw, Rond2(totalen.Subtotaal+totalen.Marge), 0.001)
	assert.InDelta(t, totalen.TotaalInclBtw, Rond2(totalen.TotaalExBtw+totalen.Btw), 0.001)
	assert.InDelta(t, 10.75, totalen.TotaalUren, 0.001)
	assert.True(t, totalen.TotaalInclBtw >= totalen.TotaalExBtw)
	assert.True(t, totalen.TotaalExBtw >= totalen.Subtotaal)
}

func TestBerekenTotalen_NulPercentages(t *testing.T) {
	regels := []model.OfferteRegel{
		{Type: model.RegelTypeArbeid, Hoeveelheid: 4, Totaal: 180},
		{Type: model.RegelTypeMateriaal, Totaal: 55.55},
	}

	totalen, err := BerekenTotalen(regels, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, totalen.Subtotaal, totalen.TotaalInclBtw, 0.001)
}

func TestBerekenTotalen_LegeInvoer(t *testing.T) {
	regels, err := BerekenRegels(Invoer{
		Bereikbaarheid: model.BereikbaarheidGoed,
		Achterstand:    model.AchterstandGeen,
	}, testReferentie())
	require.NoError(t, err)
	assert.Empty(t, regels)

	totalen, err := BerekenTotalen(regels, 20, 21)
	require.NoError(t, err)
	assert.Equal(t, 0.0, totalen.Subtotaal)
	assert.Equal(t, 0.0, totalen.TotaalInclBtw)
	assert.Equal(t, 0.0, totalen.TotaalUren)
}

func TestBerekenTotalen_PercentageBuitenBereik(t *testing.T) {
	var invalid *InvalidInputError

	_, err := BerekenTotalen(nil, -1, 21)
	assert.ErrorAs(t, err, &invalid)

	_, err = BerekenTotalen(nil, 20, 101)
	assert.ErrorAs(t, err, &invalid)
}
