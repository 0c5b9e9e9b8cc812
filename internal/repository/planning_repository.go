package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/groenvak/offerte-service/internal/model"
)

// PlanningRepository beheert ploegen, voertuigen en hun inzet op projecten.
type PlanningRepository struct {
	db *gorm.DB
}

func NewPlanningRepository(db *gorm.DB) *PlanningRepository {
	return &PlanningRepository{db: db}
}

type ploegRow struct {
	ID     uuid.UUID
	OrgID  uuid.UUID
	Naam   string
	Leden  string
	Actief bool
}

func (row ploegRow) toModel() model.Ploeg {
	ploeg := model.Ploeg{
		ID:     row.ID,
		OrgID:  row.OrgID,
		Naam:   row.Naam,
		Actief: row.Actief,
	}
	for _, lid := range strings.Split(row.Leden, ",") {
		lid = strings.TrimSpace(lid)
		if lid != "" {
			ploeg.Leden = append(ploeg.Leden, lid)
		}
	}
	return ploeg
}

func (r *PlanningRepository) ListPloegen(ctx context.Context, orgID uuid.UUID) ([]model.Ploeg, error) {
	var rows []ploegRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, org_id, naam, leden, actief
		FROM ploegen
		WHERE org_id = ?
		ORDER BY naam ASC
	`, orgID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	ploegen := make([]model.Ploeg, 0, len(rows))
	for _, row := range rows {
		ploegen = append(ploegen, row.toModel())
	}
	return ploegen, nil
}

func (r *PlanningRepository) CreatePloeg(ctx context.Context, ploeg model.Ploeg) (*model.Ploeg, error) {
	var row ploegRow
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO ploegen (org_id, naam, leden, actief)
		VALUES (?, ?, ?, ?)
		RETURNING id, org_id, naam, leden, actief
	`, ploeg.OrgID, ploeg.Naam, strings.Join(ploeg.Leden, ","), ploeg.Actief).Scan(&row).Error; err != nil {
		return nil, err
	}
	saved := row.toModel()
	return &saved, nil
}

func (r *PlanningRepository) UpdatePloeg(ctx context.Context, ploeg model.Ploeg) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE ploegen
		SET naam = ?, leden = ?, actief = ?
		WHERE id = ? AND org_id = ?
	`, ploeg.Naam, strings.Join(ploeg.Leden, ","), ploeg.Actief, ploeg.ID, ploeg.OrgID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PlanningRepository) ListVoertuigen(ctx context.Context, orgID uuid.UUID) ([]model.Voertuig, error) {
	var rows []model.Voertuig
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, org_id, kenteken, omschrijving, actief
		FROM voertuigen
		WHERE org_id = ?
		ORDER BY kenteken ASC
	`, orgID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PlanningRepository) CreateVoertuig(ctx context.Context, voertuig model.Voertuig) (*model.Voertuig, error) {
	var saved model.Voertuig
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO voertuigen (org_id, kenteken, omschrijving, actief)
		VALUES (?, ?, ?, ?)
		RETURNING id, org_id, kenteken, omschrijving, actief
	`, voertuig.OrgID, voertuig.Kenteken, voertuig.Omschrijving, voertuig.Actief).Scan(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PlanningRepository) CreateInzet(ctx context.Context, inzet model.ProjectInzet) (*model.ProjectInzet, error) {
	var saved model.ProjectInzet
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO project_inzet (org_id, project_id, ploeg_id, voertuig_id, datum)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, org_id, project_id, ploeg_id, voertuig_id, datum
	`, inzet.OrgID, inzet.ProjectID, inzet.PloegID, inzet.VoertuigID, inzet.Datum).Scan(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PlanningRepository) ListInzet(ctx context.Context, orgID, projectID uuid.UUID, from, to time.Time) ([]model.ProjectInzet, error) {
	var rows []model.ProjectInzet
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, org_id, project_id, ploeg_id, voertuig_id, datum
		FROM project_inzet
		WHERE org_id = ? AND project_id = ? AND datum >= ? AND datum < ?
		ORDER BY datum ASC
	`, orgID, projectID, from, to).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
