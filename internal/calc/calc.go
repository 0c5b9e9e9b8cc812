// Package calc is de offerte-rekenkern: het zet scopekeuzes, aantallen en
// terreincondities om in geprijsde offerteregels en totalen. De functies
// zijn puur; referentiedata komt binnen als waarde en wordt nooit gemuteerd.
package calc

import (
	"github.com/google/uuid"

	"github.com/groenvak/offerte-service/internal/model"
)

type TaakAantal struct {
	TaakKey     string  `json:"taak"`
	Hoeveelheid float64 `json:"hoeveelheid"`
}

type MateriaalAantal struct {
	ProductID   uuid.UUID `json:"productId"`
	Hoeveelheid float64   `json:"hoeveelheid"`
}

// ScopeSelectie gebruikt slices en geen maps: de volgorde van taken en
// materialen bepaalt de volgorde van de offerteregels.
type ScopeSelectie struct {
	Scope      model.Scope       `json:"scope"`
	Taken      []TaakAantal      `json:"taken"`
	Materialen []MateriaalAantal `json:"materialen"`
}

type Invoer struct {
	ScopeSelecties []ScopeSelectie        `json:"scopeSelecties"`
	Bereikbaarheid model.Bereikbaarheid   `json:"bereikbaarheid"`
	Achterstand    model.AchterstandErnst `json:"achterstand"`
}

// Referentie bundelt de referentiedata waarover gerekend wordt. De caller
// laadt deze eenmalig per berekening; de rekenkern indexeert ze zelf.
type Referentie struct {
	NormUren     []model.NormUur
	Factoren     []model.CorrectieFactor
	Producten    []model.Product
	Instellingen model.Instellingen
}

type normKey struct {
	scope model.Scope
	taak  string
}

type factorKey struct {
	dimensie model.FactorDimensie
	waarde   string
}

type index struct {
	normUren  map[normKey]model.NormUur
	factoren  map[factorKey]float64
	producten map[uuid.UUID]model.Product
}

func buildIndex(ref Referentie) index {
	idx := index{
		normUren:  make(map[normKey]model.NormUur, len(ref.NormUren)),
		factoren:  make(map[factorKey]float64, len(ref.Factoren)),
		producten: make(map[uuid.UUID]model.Product, len(ref.Producten)),
	}
	for _, n := range ref.NormUren {
		if !n.Actief {
			continue
		}
		idx.normUren[normKey{scope: n.Scope, taak: n.TaakKey}] = n
	}
	for _, f := range ref.Factoren {
		idx.factoren[factorKey{dimensie: f.Dimensie, waarde: f.Waarde}] = f.Factor
	}
	for _, p := range ref.Producten {
		idx.producten[p.ID] = p
	}
	return idx
}
