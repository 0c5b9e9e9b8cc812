package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RolePlanner    Role = "PLANNER"
	RoleMedewerker Role = "MEDEWERKER"
)

// Principal is de geauthenticeerde gebruiker zoals die uit het JWT komt.
// Alle data-toegang is begrensd tot de eigen organisatie.
type Principal struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Naam   string
	Role   Role
}

func (p Principal) IsAdmin() bool      { return p.Role == RoleAdmin }
func (p Principal) IsPlanner() bool    { return p.Role == RolePlanner }
func (p Principal) IsMedewerker() bool { return p.Role == RoleMedewerker }

// KanBeheren geldt voor alles behalve urenregistratie door medewerkers zelf.
func (p Principal) KanBeheren() bool { return p.IsAdmin() || p.IsPlanner() }
