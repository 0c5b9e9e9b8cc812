package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'offerte_status') THEN
			CREATE TYPE offerte_status AS ENUM ('CONCEPT', 'VERZONDEN', 'GEACCEPTEERD', 'AFGEWEZEN');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'project_status') THEN
			CREATE TYPE project_status AS ENUM ('GEPLAND', 'IN_UITVOERING', 'AFGEROND');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS instellingen (
		org_id UUID PRIMARY KEY,
		uurtarief NUMERIC(18,2) NOT NULL,
		standaard_marge_percentage NUMERIC(5,2) NOT NULL,
		btw_percentage NUMERIC(5,2) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS norm_uren (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL,
		scope VARCHAR(32) NOT NULL,
		taak_key VARCHAR(64) NOT NULL,
		omschrijving TEXT NOT NULL,
		eenheid VARCHAR(16) NOT NULL,
		uren_per_eenheid NUMERIC(10,4) NOT NULL,
		actief BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_norm_uren_actief
		ON norm_uren (org_id, scope, taak_key) WHERE actief;`,
	`CREATE TABLE IF NOT EXISTS correctie_factoren (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL,
		dimensie VARCHAR(32) NOT NULL,
		waarde VARCHAR(32) NOT NULL,
		factor NUMERIC(6,3) NOT NULL CHECK (factor > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (org_id, dimensie, waarde)
	);`,
	`CREATE TABLE IF NOT EXISTS producten (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL,
		naam TEXT NOT NULL,
		eenheid VARCHAR(16) NOT NULL,
		prijs_per_eenheid NUMERIC(18,2) NOT NULL,
		actief BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS offertes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL,
		nummer VARCHAR(32) NOT NULL,
		klant_naam TEXT NOT NULL,
		klant_adres TEXT NOT NULL DEFAULT '',
		klant_email TEXT NOT NULL DEFAULT '',
		status offerte_status NOT NULL DEFAULT 'CONCEPT',
		bereikbaarheid VARCHAR(16) NOT NULL DEFAULT 'goed',
		achterstand VARCHAR(16) NOT NULL DEFAULT 'geen',
		marge_percentage NUMERIC(5,2) NOT NULL,
		btw_percentage NUMERIC(5,2) NOT NULL,
		materiaalkosten NUMERIC(18,2) NOT NULL DEFAULT 0,
		arbeidskosten NUMERIC(18,2) NOT NULL DEFAULT 0,
		totaal_uren NUMERIC(10,2) NOT NULL DEFAULT 0,
		subtotaal NUMERIC(18,2) NOT NULL DEFAULT 0,
		marge NUMERIC(18,2) NOT NULL DEFAULT 0,
		totaal_ex_btw NUMERIC(18,2) NOT NULL DEFAULT 0,
		btw NUMERIC(18,2) NOT NULL DEFAULT 0,
		totaal_incl_btw NUMERIC(18,2) NOT NULL DEFAULT 0,
		created_by_user_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (org_id, nummer)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_offertes_org_status ON offertes (org_id, status);`,
	`CREATE TABLE IF NOT EXISTS offerte_regels (
		id UUID NOT NULL,
		offerte_id UUID NOT NULL REFERENCES offertes(id) ON DELETE CASCADE,
		volgnummer INT NOT NULL,
		omschrijving TEXT NOT NULL,
		scope VARCHAR(32) NOT NULL,
		type VARCHAR(16) NOT NULL,
		hoeveelheid NUMERIC(12,2) NOT NULL,
		eenheid VARCHAR(16) NOT NULL,
		prijs_per_eenheid NUMERIC(18,2) NOT NULL,
		totaal NUMERIC(18,2) NOT NULL,
		PRIMARY KEY (offerte_id, volgnummer)
	);`,
	`CREATE TABLE IF NOT EXISTS projecten (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL,
		offerte_id UUID REFERENCES offertes(id),
		naam TEXT NOT NULL,
		klant_naam TEXT NOT NULL DEFAULT '',
		status project_status NOT NULL DEFAULT 'GEPLAND',
		start_datum DATE,
		eind_datum DATE,
		begrote_uren NUMERIC(10,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_projecten_org_status ON projecten (org_id, status);`,
	`CREATE TABLE IF NOT EXISTS ploegen (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL,
		naam TEXT NOT NULL,
		leden TEXT NOT NULL DEFAULT '',
		actief BOOLEAN NOT NULL DEFAULT TRUE
	);`,
	`CREATE TABLE IF NOT EXISTS voertuigen (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL,
		kenteken VARCHAR(16) NOT NULL,
		omschrijving TEXT NOT NULL DEFAULT '',
		actief BOOLEAN NOT NULL DEFAULT TRUE,
		UNIQUE (org_id, kenteken)
	);`,
	`CREATE TABLE IF NOT EXISTS project_inzet (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL,
		project_id UUID NOT NULL REFERENCES projecten(id) ON DELETE CASCADE,
		ploeg_id UUID NOT NULL REFERENCES ploegen(id),
		voertuig_id UUID REFERENCES voertuigen(id),
		datum DATE NOT NULL,
		UNIQUE (project_id, ploeg_id, datum)
	);`,
	`CREATE TABLE IF NOT EXISTS uren_registraties (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL,
		project_id UUID NOT NULL REFERENCES projecten(id),
		user_id UUID NOT NULL,
		medewerker TEXT NOT NULL,
		datum DATE NOT NULL,
		uren NUMERIC(5,2) NOT NULL CHECK (uren > 0 AND uren <= 24),
		omschrijving TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_uren_project_datum ON uren_registraties (project_id, datum);`,
	`CREATE INDEX IF NOT EXISTS idx_uren_org_datum ON uren_registraties (org_id, datum);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
