package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Statements are kept portable between postgres and sqlite: text ids,
// numeric money columns, nested payloads stored as JSON text.
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS interventions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		time TEXT NOT NULL DEFAULT '',
		duration INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		location TEXT NOT NULL DEFAULT '{}',
		client_id TEXT NOT NULL DEFAULT '',
		client_name TEXT NOT NULL DEFAULT '',
		site_name TEXT NOT NULL DEFAULT '',
		site_contact TEXT NOT NULL DEFAULT '{}',
		technicians TEXT NOT NULL DEFAULT '[]',
		expenses TEXT NOT NULL DEFAULT '[]',
		buy_price NUMERIC NOT NULL DEFAULT 0,
		sell_price NUMERIC NOT NULL DEFAULT 0,
		total_expenses NUMERIC NOT NULL DEFAULT 0,
		total_amount NUMERIC NOT NULL DEFAULT 0,
		closure TEXT,
		tracking_numbers TEXT NOT NULL DEFAULT '[]',
		attachments TEXT NOT NULL DEFAULT '[]',
		project_id TEXT NOT NULL DEFAULT '',
		service_id TEXT NOT NULL DEFAULT '',
		invoice_number TEXT NOT NULL DEFAULT '',
		invoice_status TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_status ON interventions (status);`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_client_id ON interventions (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_project_id ON interventions (project_id);`,
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		client_id TEXT NOT NULL DEFAULT '',
		client_name TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'PLANNED',
		created_at TIMESTAMP NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_client_id ON projects (client_id);`,
	`CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		postal_code TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS technicians (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'INTERVENTION',
		client_id TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		services TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client_id ON contracts (client_id);`,
	`CREATE TABLE IF NOT EXISTS prices (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL DEFAULT '',
		client_name TEXT NOT NULL DEFAULT '',
		contract_id TEXT NOT NULL DEFAULT '',
		contract_name TEXT NOT NULL DEFAULT '',
		service_type TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		buy_price NUMERIC NOT NULL DEFAULT 0,
		sell_price NUMERIC NOT NULL DEFAULT 0,
		unit TEXT NOT NULL DEFAULT 'unit',
		created_at TIMESTAMP NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		period TEXT NOT NULL,
		amount NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'En attente',
		upload_date TEXT NOT NULL DEFAULT '',
		attachment TEXT NOT NULL DEFAULT '',
		interventions_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_period ON invoices (period);`,
	`CREATE TABLE IF NOT EXISTS admin_documents (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		expiry_date TEXT NOT NULL DEFAULT '',
		file TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'TECHNICIAN',
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (email);`,
	`CREATE TABLE IF NOT EXISTS sequences (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL DEFAULT 0
	);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
