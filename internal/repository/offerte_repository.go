package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/groenvak/offerte-service/internal/model"
)

type OfferteRepository struct {
	db *gorm.DB
}

func NewOfferteRepository(db *gorm.DB) *OfferteRepository {
	return &OfferteRepository{db: db}
}

type offerteRow struct {
	ID              uuid.UUID
	OrgID           uuid.UUID
	Nummer          string
	KlantNaam       string
	KlantAdres      string
	KlantEmail      string
	Status          model.OfferteStatus
	Bereikbaarheid  model.Bereikbaarheid
	Achterstand     model.AchterstandErnst
	MargePercentage float64
	BtwPercentage   float64
	Materiaalkosten float64
	Arbeidskosten   float64
	TotaalUren      float64
	Subtotaal       float64
	Marge           float64
	TotaalExBtw     float64
	Btw             float64
	TotaalInclBtw   float64
	CreatedByUserID uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const offerteColumns = `
	id, org_id, nummer, klant_naam, klant_adres, klant_email, status,
	bereikbaarheid, achterstand, marge_percentage, btw_percentage,
	materiaalkosten, arbeidskosten, totaal_uren, subtotaal, marge,
	totaal_ex_btw, btw, totaal_incl_btw, created_by_user_id, created_at, updated_at
`

func (row offerteRow) toModel() model.Offerte {
	return model.Offerte{
		ID:              row.ID,
		OrgID:           row.OrgID,
		Nummer:          row.Nummer,
		KlantNaam:       row.KlantNaam,
		KlantAdres:      row.KlantAdres,
		KlantEmail:      row.KlantEmail,
		Status:          row.Status,
		Bereikbaarheid:  row.Bereikbaarheid,
		Achterstand:     row.Achterstand,
		MargePercentage: row.MargePercentage,
		BtwPercentage:   row.BtwPercentage,
		Totalen: model.Totalen{
			Materiaalkosten: row.Materiaalkosten,
			Arbeidskosten:   row.Arbeidskosten,
			TotaalUren:      row.TotaalUren,
			Subtotaal:       row.Subtotaal,
			Marge:           row.Marge,
			MargePercentage: row.MargePercentage,
			TotaalExBtw:     row.TotaalExBtw,
			Btw:             row.Btw,
			TotaalInclBtw:   row.TotaalInclBtw,
		},
		CreatedByUserID: row.CreatedByUserID,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func (r *OfferteRepository) Create(ctx context.Context, offerte model.Offerte) (*model.Offerte, error) {
	var saved model.Offerte
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row offerteRow
		err := tx.Raw(`
			INSERT INTO offertes (
				org_id, nummer, klant_naam, klant_adres, klant_email, status,
				bereikbaarheid, achterstand, marge_percentage, btw_percentage,
				materiaalkosten, arbeidskosten, totaal_uren, subtotaal, marge,
				totaal_ex_btw, btw, totaal_incl_btw, created_by_user_id
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING `+offerteColumns,
			offerte.OrgID,
			offerte.Nummer,
			offerte.KlantNaam,
			offerte.KlantAdres,
			offerte.KlantEmail,
			offerte.Status,
			offerte.Bereikbaarheid,
			offerte.Achterstand,
			offerte.MargePercentage,
			offerte.BtwPercentage,
			offerte.Totalen.Materiaalkosten,
			offerte.Totalen.Arbeidskosten,
			offerte.Totalen.TotaalUren,
			offerte.Totalen.Subtotaal,
			offerte.Totalen.Marge,
			offerte.Totalen.TotaalExBtw,
			offerte.Totalen.Btw,
			offerte.Totalen.TotaalInclBtw,
			offerte.CreatedByUserID,
		).Scan(&row).Error
		if err != nil {
			return err
		}

		if err := insertRegels(tx, row.ID, offerte.Regels); err != nil {
			return err
		}

		saved = row.toModel()
		saved.Regels = offerte.Regels
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Update overschrijft de offerte en vervangt de regel-snapshot volledig.
func (r *OfferteRepository) Update(ctx context.Context, offerte model.Offerte) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			UPDATE offertes
			SET klant_naam = ?, klant_adres = ?, klant_email = ?,
				bereikbaarheid = ?, achterstand = ?,
				marge_percentage = ?, btw_percentage = ?,
				materiaalkosten = ?, arbeidskosten = ?, totaal_uren = ?,
				subtotaal = ?, marge = ?, totaal_ex_btw = ?, btw = ?, totaal_incl_btw = ?,
				updated_at = NOW()
			WHERE id = ? AND org_id = ?
		`,
			offerte.KlantNaam,
			offerte.KlantAdres,
			offerte.KlantEmail,
			offerte.Bereikbaarheid,
			offerte.Achterstand,
			offerte.MargePercentage,
			offerte.BtwPercentage,
			offerte.Totalen.Materiaalkosten,
			offerte.Totalen.Arbeidskosten,
			offerte.Totalen.TotaalUren,
			offerte.Totalen.Subtotaal,
			offerte.Totalen.Marge,
			offerte.Totalen.TotaalExBtw,
			offerte.Totalen.Btw,
			offerte.Totalen.TotaalInclBtw,
			offerte.ID,
			offerte.OrgID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Exec(`DELETE FROM offerte_regels WHERE offerte_id = ?`, offerte.ID).Error; err != nil {
			return err
		}
		return insertRegels(tx, offerte.ID, offerte.Regels)
	})
}

func insertRegels(tx *gorm.DB, offerteID uuid.UUID, regels []model.OfferteRegel) error {
	for i, regel := range regels {
		if err := tx.Exec(`
			INSERT INTO offerte_regels (
				id, offerte_id, volgnummer, omschrijving, scope, type,
				hoeveelheid, eenheid, prijs_per_eenheid, totaal
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, regel.ID, offerteID, i, regel.Omschrijving, regel.Scope, regel.Type,
			regel.Hoeveelheid, regel.Eenheid, regel.PrijsPerEenheid, regel.Totaal).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *OfferteRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*model.Offerte, error) {
	var row offerteRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+offerteColumns+`
		FROM offertes
		WHERE id = ? AND org_id = ?
		LIMIT 1
	`, id, orgID).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	var regels []model.OfferteRegel
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, omschrijving, scope, type, hoeveelheid, eenheid, prijs_per_eenheid, totaal
		FROM offerte_regels
		WHERE offerte_id = ?
		ORDER BY volgnummer ASC
	`, id).Scan(&regels).Error; err != nil {
		return nil, err
	}

	offerte := row.toModel()
	offerte.Regels = regels
	return &offerte, nil
}

func (r *OfferteRepository) List(ctx context.Context, orgID uuid.UUID, status *model.OfferteStatus) ([]model.Offerte, error) {
	query := `
		SELECT ` + offerteColumns + `
		FROM offertes
		WHERE org_id = ?
	`
	args := []interface{}{orgID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY created_at DESC"

	var rows []offerteRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	offertes := make([]model.Offerte, 0, len(rows))
	for _, row := range rows {
		offertes = append(offertes, row.toModel())
	}
	return offertes, nil
}

func (r *OfferteRepository) UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status model.OfferteStatus) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE offertes
		SET status = ?, updated_at = NOW()
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

// VolgendNummer geeft het eerstvolgende offertenummer binnen het jaar.
func (r *OfferteRepository) VolgendNummer(ctx context.Context, orgID uuid.UUID, jaar int) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM offertes
		WHERE org_id = ? AND EXTRACT(YEAR FROM created_at) = ?
	`, orgID, jaar).Scan(&count).Error; err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}
