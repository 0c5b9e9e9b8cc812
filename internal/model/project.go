package model

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusGepland      ProjectStatus = "GEPLAND"
	ProjectStatusInUitvoering ProjectStatus = "IN_UITVOERING"
	ProjectStatusAfgerond     ProjectStatus = "AFGEROND"
)

type Project struct {
	ID          uuid.UUID     `json:"id"`
	OrgID       uuid.UUID     `json:"-"`
	OfferteID   *uuid.UUID    `json:"offerteId,omitempty"` // gezet als het project uit een geaccepteerde offerte komt
	Naam        string        `json:"naam"`
	KlantNaam   string        `json:"klantNaam"`
	Status      ProjectStatus `json:"status"`
	StartDatum  *time.Time    `json:"startDatum,omitempty"`
	EindDatum   *time.Time    `json:"eindDatum,omitempty"`
	BegroteUren float64       `json:"begroteUren"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type Ploeg struct {
	ID     uuid.UUID `json:"id"`
	OrgID  uuid.UUID `json:"-"`
	Naam   string    `json:"naam"`
	Leden  []string  `json:"leden"`
	Actief bool      `json:"actief"`
}

type Voertuig struct {
	ID           uuid.UUID `json:"id"`
	OrgID        uuid.UUID `json:"-"`
	Kenteken     string    `json:"kenteken"`
	Omschrijving string    `json:"omschrijving"`
	Actief       bool      `json:"actief"`
}

// ProjectInzet plant een ploeg en optioneel een voertuig op een project
// voor één dag.
type ProjectInzet struct {
	ID         uuid.UUID  `json:"id"`
	OrgID      uuid.UUID  `json:"-"`
	ProjectID  uuid.UUID  `json:"projectId"`
	PloegID    uuid.UUID  `json:"ploegId"`
	VoertuigID *uuid.UUID `json:"voertuigId,omitempty"`
	Datum      time.Time  `json:"datum"`
}
