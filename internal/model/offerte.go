package model

import (
	"time"

	"github.com/google/uuid"
)

type OfferteStatus string

const (
	OfferteStatusConcept      OfferteStatus = "CONCEPT"
	OfferteStatusVerzonden    OfferteStatus = "VERZONDEN"
	OfferteStatusGeaccepteerd OfferteStatus = "GEACCEPTEERD"
	OfferteStatusAfgewezen    OfferteStatus = "AFGEWEZEN"
)

type RegelType string

const (
	RegelTypeArbeid    RegelType = "arbeid"
	RegelTypeMateriaal RegelType = "materiaal"
)

// OfferteRegel is één geprijsde regel in een offerte. Totaal is altijd
// Hoeveelheid * PrijsPerEenheid, afgerond op twee decimalen.
type OfferteRegel struct {
	ID              uuid.UUID `json:"id"`
	Omschrijving    string    `json:"omschrijving"`
	Scope           Scope     `json:"scope"`
	Type            RegelType `json:"type"`
	Hoeveelheid     float64   `json:"hoeveelheid"`
	Eenheid         string    `json:"eenheid"`
	PrijsPerEenheid float64   `json:"prijsPerEenheid"`
	Totaal          float64   `json:"totaal"`
}

// Totalen is de financiële samenvatting van een set offerteregels.
// De cascade is vast: subtotaal -> marge -> totaal ex BTW -> BTW -> incl BTW.
type Totalen struct {
	Materiaalkosten float64 `json:"materiaalkosten"`
	Arbeidskosten   float64 `json:"arbeidskosten"`
	TotaalUren      float64 `json:"totaalUren"`
	Subtotaal       float64 `json:"subtotaal"`
	Marge           float64 `json:"marge"`
	MargePercentage float64 `json:"margePercentage"`
	TotaalExBtw     float64 `json:"totaalExBtw"`
	Btw             float64 `json:"btw"`
	TotaalInclBtw   float64 `json:"totaalInclBtw"`
}

type Offerte struct {
	ID              uuid.UUID        `json:"id"`
	OrgID           uuid.UUID        `json:"-"`
	Nummer          string           `json:"nummer"`
	KlantNaam       string           `json:"klantNaam"`
	KlantAdres      string           `json:"klantAdres"`
	KlantEmail      string           `json:"klantEmail"`
	Status          OfferteStatus    `json:"status"`
	Bereikbaarheid  Bereikbaarheid   `json:"bereikbaarheid"`
	Achterstand     AchterstandErnst `json:"achterstand"`
	MargePercentage float64          `json:"margePercentage"`
	BtwPercentage   float64          `json:"btwPercentage"`
	Regels          []OfferteRegel   `json:"regels,omitempty"`
	Totalen         Totalen          `json:"totalen"`
	CreatedByUserID uuid.UUID        `json:"createdByUserId"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}
