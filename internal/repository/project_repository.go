package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/groenvak/offerte-service/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	var saved model.Project
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO projecten (org_id, offerte_id, naam, klant_naam, status, start_datum, eind_datum, begrote_uren)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, org_id, offerte_id, naam, klant_naam, status, start_datum, eind_datum, begrote_uren, created_at
	`, project.OrgID, project.OfferteID, project.Naam, project.KlantNaam, project.Status,
		project.StartDatum, project.EindDatum, project.BegroteUren).Scan(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*model.Project, error) {
	var row model.Project
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, org_id, offerte_id, naam, klant_naam, status, start_datum, eind_datum, begrote_uren, created_at
		FROM projecten
		WHERE id = ? AND org_id = ?
		LIMIT 1
	`, id, orgID).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *ProjectRepository) List(ctx context.Context, orgID uuid.UUID, status *model.ProjectStatus) ([]model.Project, error) {
	query := `
		SELECT id, org_id, offerte_id, naam, klant_naam, status, start_datum, eind_datum, begrote_uren, created_at
		FROM projecten
		WHERE org_id = ?
	`
	args := []interface{}{orgID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY created_at DESC"

	var rows []model.Project
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status model.ProjectStatus) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE projecten
		SET status = ?
		WHERE id = ? AND org_id = ?
	`, status, id, orgID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProjectRepository) HasOfferteProject(ctx context.Context, offerteID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM projecten WHERE offerte_id = ?
	`, offerteID).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
