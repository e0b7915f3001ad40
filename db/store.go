package db

import (
	"context"
	"database/sql"
	"fmt"

	"registration-module/models"

	_ "github.com/lib/pq"
)

// Store wraps the Postgres connection pool. All access is through
// parameterized statements; the pool is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// New opens the database, verifies the connection and bootstraps tables.
func New(connStr string) (*Store, error) {
	database, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	s := &Store{db: database}
	if err := s.createTables(); err != nil {
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	return s, nil
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	registrationTable := `
	CREATE TABLE IF NOT EXISTS registrations (
		id SERIAL PRIMARY KEY,
		txnid TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		profession TEXT NOT NULL,
		state TEXT NOT NULL,
		batch TEXT NOT NULL,
		language TEXT DEFAULT '',
		amount TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		payu_txn_id TEXT,
		referral TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	influencerTable := `
	CREATE TABLE IF NOT EXISTS influencers (
		id SERIAL PRIMARY KEY,
		ref_code TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := s.db.Exec(registrationTable); err != nil {
		return fmt.Errorf("error creating registrations table: %w", err)
	}

	if _, err := s.db.Exec(influencerTable); err != nil {
		return fmt.Errorf("error creating influencers table: %w", err)
	}

	return nil
}

// InsertRegistration writes a new row with status INITIATED.
func (s *Store) InsertRegistration(ctx context.Context, reg *models.Registration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registrations
		 (txnid, name, email, phone, profession, state, batch, language, amount, payment_status, referral)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		reg.TxnID, reg.Name, reg.Email, reg.Phone, reg.Profession, reg.State,
		reg.Batch, reg.Language, reg.Amount, reg.PaymentStatus, reg.Referral)
	if err != nil {
		return fmt.Errorf("error inserting registration: %w", err)
	}
	return nil
}

// GetRegistration returns the registration for txnid, or sql.ErrNoRows.
func (s *Store) GetRegistration(ctx context.Context, txnid string) (*models.Registration, error) {
	var reg models.Registration
	err := s.db.QueryRowContext(ctx,
		`SELECT id, txnid, name, email, phone, profession, state, batch, language,
		        amount, payment_status, payu_txn_id, referral, created_at
		 FROM registrations WHERE txnid = $1`, txnid).
		Scan(&reg.ID, &reg.TxnID, &reg.Name, &reg.Email, &reg.Phone,
			&reg.Profession, &reg.State, &reg.Batch, &reg.Language,
			&reg.Amount, &reg.PaymentStatus, &reg.PayUTxnID, &reg.Referral,
			&reg.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// MarkPaymentSuccess sets the row to SUCCESS and records the gateway
// transaction id (NULL when the postback did not carry one). Returns the
// number of rows matched; an unknown txnid matches zero and is not an error.
func (s *Store) MarkPaymentSuccess(ctx context.Context, txnid string, payuTxnID *string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE registrations
		 SET payment_status = $1, payu_txn_id = $2
		 WHERE txnid = $3`,
		models.StatusSuccess, payuTxnID, txnid)
	if err != nil {
		return 0, fmt.Errorf("error updating payment status: %w", err)
	}
	return result.RowsAffected()
}

// MarkPaymentFailed sets the row to FAILED.
func (s *Store) MarkPaymentFailed(ctx context.Context, txnid string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE registrations
		 SET payment_status = $1
		 WHERE txnid = $2`,
		models.StatusFailed, txnid)
	if err != nil {
		return 0, fmt.Errorf("error updating payment status: %w", err)
	}
	return result.RowsAffected()
}

// ListRegistrations returns all rows, newest first.
func (s *Store) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, txnid, name, email, phone, profession, state, batch, language,
		        amount, payment_status, payu_txn_id, referral, created_at
		 FROM registrations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.ID, &reg.TxnID, &reg.Name, &reg.Email,
			&reg.Phone, &reg.Profession, &reg.State, &reg.Batch, &reg.Language,
			&reg.Amount, &reg.PaymentStatus, &reg.PayUTxnID, &reg.Referral,
			&reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// InsertInfluencer writes a new influencer row.
func (s *Store) InsertInfluencer(ctx context.Context, inf *models.Influencer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO influencers (ref_code, name, email, phone)
		 VALUES ($1,$2,$3,$4)`,
		inf.RefCode, inf.Name, inf.Email, inf.Phone)
	if err != nil {
		return fmt.Errorf("error inserting influencer: %w", err)
	}
	return nil
}

// InfluencerStats aggregates registrations attributed to refCode. Amounts are
// stored as decimal strings; the sum casts through NUMERIC.
func (s *Store) InfluencerStats(ctx context.Context, refCode string) (*models.InfluencerStats, error) {
	stats := models.InfluencerStats{RefCode: refCode}
	err := s.db.QueryRowContext(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE payment_status = $1),
		   COUNT(*) FILTER (WHERE payment_status = $2),
		   COALESCE(SUM(amount::NUMERIC) FILTER (WHERE payment_status = $2), 0)
		 FROM registrations WHERE referral = $3`,
		models.StatusInitiated, models.StatusSuccess, refCode).
		Scan(&stats.Initiated, &stats.Success, &stats.Revenue)
	if err != nil {
		return nil, fmt.Errorf("error aggregating influencer stats: %w", err)
	}
	return &stats, nil
}
