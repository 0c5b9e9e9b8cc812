package model

import (
	"time"

	"github.com/google/uuid"
)

type UrenRegistratie struct {
	ID           uuid.UUID `json:"id"`
	OrgID        uuid.UUID `json:"-"`
	ProjectID    uuid.UUID `json:"projectId"`
	UserID       uuid.UUID `json:"userId"`
	Medewerker   string    `json:"medewerker"`
	Datum        time.Time `json:"datum"`
	Uren         float64   `json:"uren"`
	Omschrijving string    `json:"omschrijving"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProjectUren vat de geregistreerde uren van één project samen tegenover
// de uren die in de offerte zijn begroot.
type ProjectUren struct {
	ProjectID    uuid.UUID
	ProjectNaam  string
	BegroteUren  float64
	GewerkteUren float64
	Registraties []UrenRegistratie
}

// UrenRapport is de invoer voor de Excel-export van urenregistraties.
type UrenRapport struct {
	OrgID       uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotaalUren  float64
	Projecten   []ProjectUren
}
