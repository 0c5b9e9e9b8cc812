package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/groenvak/offerte-service/internal/model"
)

type UrenRepository struct {
	db *gorm.DB
}

func NewUrenRepository(db *gorm.DB) *UrenRepository {
	return &UrenRepository{db: db}
}

func (r *UrenRepository) Create(ctx context.Context, registratie model.UrenRegistratie) (*model.UrenRegistratie, error) {
	var saved model.UrenRegistratie
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO uren_registraties (org_id, project_id, user_id, medewerker, datum, uren, omschrijving)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, org_id, project_id, user_id, medewerker, datum, uren, omschrijving, created_at
	`, registratie.OrgID, registratie.ProjectID, registratie.UserID, registratie.Medewerker,
		registratie.Datum, registratie.Uren, registratie.Omschrijving).Scan(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *UrenRepository) List(ctx context.Context, orgID uuid.UUID, projectID *uuid.UUID, from, to time.Time) ([]model.UrenRegistratie, error) {
	query := `
		SELECT id, org_id, project_id, user_id, medewerker, datum, uren, omschrijving, created_at
		FROM uren_registraties
		WHERE org_id = ? AND datum >= ? AND datum < ?
	`
	args := []interface{}{orgID, from, to}
	if projectID != nil {
		query += " AND project_id = ?"
		args = append(args, *projectID)
	}
	query += " ORDER BY datum ASC, created_at ASC"

	var rows []model.UrenRegistratie
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumPerProject geeft per project de som van de geregistreerde uren in de
// periode, naast de begrote uren uit de offerte-snapshot.
func (r *UrenRepository) SumPerProject(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]model.ProjectUren, error) {
	var rows []model.ProjectUren
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id AS project_id,
			p.naam AS project_naam,
			p.begrote_uren,
			COALESCE(SUM(u.uren), 0) AS gewerkte_uren
		FROM projecten p
		LEFT JOIN uren_registraties u
			ON u.project_id = p.id AND u.datum >= ? AND u.datum < ?
		WHERE p.org_id = ?
		GROUP BY p.id, p.naam, p.begrote_uren
		ORDER BY p.naam ASC
	`, from, to, orgID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
