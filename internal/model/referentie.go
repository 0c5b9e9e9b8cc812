package model

import (
	"time"

	"github.com/google/uuid"
)

// Scope is een categorie hovenierswerk binnen een offerte.
type Scope string

const (
	ScopeGrondwerk  Scope = "grondwerk"
	ScopeBestrating Scope = "bestrating"
	ScopeGazon      Scope = "gazon"
	ScopeBeplanting Scope = "beplanting"
	ScopeAfwatering Scope = "afwatering"
	ScopeOnderhoud  Scope = "onderhoud"
)

func (s Scope) Geldig() bool {
	switch s {
	case ScopeGrondwerk, ScopeBestrating, ScopeGazon, ScopeBeplanting, ScopeAfwatering, ScopeOnderhoud:
		return true
	}
	return false
}

// Bereikbaarheid van de werklocatie, bepaalt de arbeidscorrectie.
type Bereikbaarheid string

const (
	BereikbaarheidGoed    Bereikbaarheid = "goed"
	BereikbaarheidBeperkt Bereikbaarheid = "beperkt"
	BereikbaarheidSlecht  Bereikbaarheid = "slecht"
)

func (b Bereikbaarheid) Geldig() bool {
	switch b {
	case BereikbaarheidGoed, BereikbaarheidBeperkt, BereikbaarheidSlecht:
		return true
	}
	return false
}

// AchterstandErnst geeft aan hoe verwaarloosd de tuin is.
// AchterstandGeen betekent: geen correctiefactor toepassen.
type AchterstandErnst string

const (
	AchterstandGeen    AchterstandErnst = "geen"
	AchterstandLicht   AchterstandErnst = "licht"
	AchterstandErnstig AchterstandErnst = "ernstig"
)

func (a AchterstandErnst) Geldig() bool {
	switch a {
	case AchterstandGeen, AchterstandLicht, AchterstandErnstig:
		return true
	}
	return false
}

type FactorDimensie string

const (
	DimensieBereikbaarheid FactorDimensie = "bereikbaarheid"
	DimensieAchterstand    FactorDimensie = "achterstand"
)

// NormUur koppelt een taak binnen een scope aan een standaard aantal
// arbeidsuren per eenheid. Per (scope, taak) is hoogstens één actieve rij.
type NormUur struct {
	ID             uuid.UUID `json:"id"`
	OrgID          uuid.UUID `json:"-"`
	Scope          Scope     `json:"scope"`
	TaakKey        string    `json:"taakKey"`
	Omschrijving   string    `json:"omschrijving"`
	Eenheid        string    `json:"eenheid"`
	UrenPerEenheid float64   `json:"urenPerEenheid"`
	Actief         bool      `json:"actief"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CorrectieFactor is een vermenigvuldiger op arbeidsuren voor een
// terreinconditie. Factor is altijd > 0.
type CorrectieFactor struct {
	ID        uuid.UUID      `json:"id"`
	OrgID     uuid.UUID      `json:"-"`
	Dimensie  FactorDimensie `json:"dimensie"`
	Waarde    string         `json:"waarde"`
	Factor    float64        `json:"factor"`
	CreatedAt time.Time      `json:"createdAt"`
}

type Product struct {
	ID              uuid.UUID `json:"id"`
	OrgID           uuid.UUID `json:"-"`
	Naam            string    `json:"naam"`
	Eenheid         string    `json:"eenheid"`
	PrijsPerEenheid float64   `json:"prijsPerEenheid"`
	Actief          bool      `json:"actief"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Instellingen zijn de bedrijfsbrede rekenparameters.
type Instellingen struct {
	OrgID                    uuid.UUID `json:"-"`
	Uurtarief                float64   `json:"uurtarief"`
	StandaardMargePercentage float64   `json:"standaardMargePercentage"`
	BtwPercentage            float64   `json:"btwPercentage"`
	UpdatedAt                time.Time `json:"updatedAt"`
}
