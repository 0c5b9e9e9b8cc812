package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/groenvak/offerte-service/internal/model"
)

type ReferentieRepository struct {
	db *gorm.DB
}

func NewReferentieRepository(db *gorm.DB) *ReferentieRepository {
	return &ReferentieRepository{db: db}
}

func (r *ReferentieRepository) GetInstellingen(ctx context.Context, orgID uuid.UUID) (*model.Instellingen, error) {
	var row model.Instellingen
	if err := r.db.WithContext(ctx).Raw(`
		SELECT org_id, uurtarief, standaard_marge_percentage, btw_percentage, updated_at
		FROM instellingen
		WHERE org_id = ?
		LIMIT 1
	`, orgID).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.OrgID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *ReferentieRepository) UpsertInstellingen(ctx context.Context, instellingen model.Instellingen) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO instellingen (org_id, uurtarief, standaard_marge_percentage, btw_percentage, updated_at)
		VALUES (?, ?, ?, ?, NOW())
		ON CONFLICT (org_id) DO UPDATE SET
			uurtarief = EXCLUDED.uurtarief,
			standaard_marge_percentage = EXCLUDED.standaard_marge_percentage,
			btw_percentage = EXCLUDED.btw_percentage,
			updated_at = NOW()
	`, instellingen.OrgID, instellingen.Uurtarief, instellingen.StandaardMargePercentage, instellingen.BtwPercentage).Error
}

func (r *ReferentieRepository) ListNormUren(ctx context.Context, orgID uuid.UUID) ([]model.NormUur, error) {
	var rows []model.NormUur
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, org_id, scope, taak_key, omschrijving, eenheid, uren_per_eenheid, actief, created_at
		FROM norm_uren
		WHERE org_id = ? AND actief
		ORDER BY scope ASC, taak_key ASC
	`, orgID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertNormUur vervangt de actieve rij voor (scope, taak): de oude rij
// wordt gedeactiveerd zodat er nooit twee actieve normen naast elkaar staan.
func (r *ReferentieRepository) UpsertNormUur(ctx context.Context, norm model.NormUur) (*model.NormUur, error) {
	var saved model.NormUur
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			UPDATE norm_uren
			SET actief = FALSE
			WHERE org_id = ? AND scope = ? AND taak_key = ? AND actief
		`, norm.OrgID, norm.Scope, norm.TaakKey).Error; err != nil {
			return err
		}
		return tx.Raw(`
			INSERT INTO norm_uren (org_id, scope, taak_key, omschrijving, eenheid, uren_per_eenheid, actief)
			VALUES (?, ?, ?, ?, ?, ?, TRUE)
			RETURNING id, org_id, scope, taak_key, omschrijving, eenheid, uren_per_eenheid, actief, created_at
		`, norm.OrgID, norm.Scope, norm.TaakKey, norm.Omschrijving, norm.Eenheid, norm.UrenPerEenheid).Scan(&saved).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ReferentieRepository) ListFactoren(ctx context.Context, orgID uuid.UUID) ([]model.CorrectieFactor, error) {
	var rows []model.CorrectieFactor
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, org_id, dimensie, waarde, factor, created_at
		FROM correctie_factoren
		WHERE org_id = ?
		ORDER BY dimensie ASC, waarde ASC
	`, orgID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReferentieRepository) UpsertFactor(ctx context.Context, factor model.CorrectieFactor) (*model.CorrectieFactor, error) {
	var saved model.CorrectieFactor
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO correctie_factoren (org_id, dimensie, waarde, factor)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (org_id, dimensie, waarde) DO UPDATE SET factor = EXCLUDED.factor
		RETURNING id, org_id, dimensie, waarde, factor, created_at
	`, factor.OrgID, factor.Dimensie, factor.Waarde, factor.Factor).Scan(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ReferentieRepository) ListProducten(ctx context.Context, orgID uuid.UUID, alleenActief bool) ([]model.Product, error) {
	query := `
		SELECT id, org_id, naam, eenheid, prijs_per_eenheid, actief, created_at
		FROM producten
		WHERE org_id = ?
	`
	if alleenActief {
		query += " AND actief"
	}
	query += " ORDER BY naam ASC"

	var rows []model.Product
	if err := r.db.WithContext(ctx).Raw(query, orgID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReferentieRepository) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	var saved model.Product
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO producten (org_id, naam, eenheid, prijs_per_eenheid, actief)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, org_id, naam, eenheid, prijs_per_eenheid, actief, created_at
	`, product.OrgID, product.Naam, product.Eenheid, product.PrijsPerEenheid, product.Actief).Scan(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ReferentieRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE producten
		SET naam = ?, eenheid = ?, prijs_per_eenheid = ?, actief = ?
		WHERE id = ? AND org_id = ?
	`, product.Naam, product.Eenheid, product.PrijsPerEenheid, product.Actief, product.ID, product.OrgID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
