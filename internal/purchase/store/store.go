package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/purchase"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPurchase reads a purchase row from the scanner and returns a populated Purchase.
// Expected column order: id, house_id, card_id, amount, description, category, installment, date, billing_month, created_by, created_at, updated_at, deleted_at
func scanPurchase(s scanner) (*purchase.Purchase, error) {
	var p purchase.Purchase

	var category, installment sql.NullString

	if err := s.Scan(
		&p.ID, &p.HouseID, &p.CardID, &p.Amount, &p.Description, &category, &installment,
		&p.Date, &p.BillingMonth, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	); err != nil {
		return nil, err
	}

	p.Category = category.String
	p.Installment = installment.String

	return &p, nil
}

const selectPurchaseColumns = `
	p.id, p.house_id, p.card_id, p.amount, p.description, p.category, p.installment,
	p.date, p.billing_month, p.created_by, p.created_at, p.updated_at, p.deleted_at
`

func (s *Store) CreatePurchase(ctx context.Context, p *purchase.Purchase) error {
	query := `
		INSERT INTO purchases (house_id, card_id, amount, description, category, installment, date, billing_month, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.HouseID,
		p.CardID,
		p.Amount,
		p.Description,
		p.Category,
		p.Installment,
		p.Date,
		p.BillingMonth,
		p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating purchase: %w", err)
	}

	return nil
}

func (s *Store) GetPurchase(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	query := `SELECT ` + selectPurchaseColumns + `
		FROM purchases p
		WHERE p.id = $1 AND p.deleted_at IS NULL`

	p, err := scanPurchase(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, purchase.ErrNotFound
		}

		return nil, fmt.Errorf("getting purchase: %w", err)
	}

	return p, nil
}

func (s *Store) ListPurchases(ctx context.Context, filter purchase.ListFilter) ([]*purchase.Purchase, error) {
	query := `SELECT ` + selectPurchaseColumns + `
		FROM purchases p
		WHERE p.deleted_at IS NULL AND p.house_id = $1`

	args := []any{filter.HouseID}

	argIdx := 2

	if filter.CardID != nil {
		query += fmt.Sprintf(" AND p.card_id = $%d", argIdx)

		args = append(args, *filter.CardID)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND p.category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND p.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND p.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY p.date ASC, p.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var ps []*purchase.Purchase

	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}

		ps = append(ps, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase rows: %w", err)
	}

	return ps, nil
}

func (s *Store) UpdatePurchase(ctx context.Context, p *purchase.Purchase) error {
	query := `
		UPDATE purchases
		SET amount = $1, description = $2, category = NULLIF($3, ''), installment = NULLIF($4, ''), date = $5, card_id = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		p.Amount,
		p.Description,
		p.Category,
		p.Installment,
		p.Date,
		p.CardID,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating purchase: %w", err)
	}

	return nil
}

func (s *Store) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE purchases
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}

	return nil
}

func importLockKey(houseID uuid.UUID, minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write(houseID[:])
	h.Write([]byte{0})
	h.Write([]byte(minDate.Format("2006-01-02")))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format("2006-01-02")))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context, houseID uuid.UUID, minDate, maxDate time.Time) (purchase.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(houseID, minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, houseID uuid.UUID, params []purchase.CreateParams) ([]*purchase.Purchase, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date        string
		Amount      int64
		Description string
	}

	// Find min/max dates and build lookup set.
	minDate := params[0].Date
	maxDate := params[0].Date
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[lookupKey{
			Date:        p.Date.Format("2006-01-02"),
			Amount:      p.Amount,
			Description: p.Description,
		}] = struct{}{}
	}

	// Query all non-deleted purchases of the house in the date range.
	query := `SELECT ` + selectPurchaseColumns + `
		FROM purchases p
		WHERE p.deleted_at IS NULL AND p.house_id = $1 AND p.date >= $2 AND p.date <= $3
		ORDER BY p.date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, houseID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*purchase.Purchase

	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}

		k := lookupKey{
			Date:        p.Date.Format("2006-01-02"),
			Amount:      p.Amount,
			Description: p.Description,
		}

		_, found := keySet[k]
		if !found {
			continue
		}

		duplicates = append(duplicates, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreatePurchases(ctx context.Context, ps []*purchase.Purchase) error {
	query := `
		INSERT INTO purchases (house_id, card_id, amount, description, category, installment, date, billing_month, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, p := range ps {
		err := itx.tx.QueryRowContext(ctx, query,
			p.HouseID,
			p.CardID,
			p.Amount,
			p.Description,
			p.Category,
			p.Installment,
			p.Date,
			p.BillingMonth,
			p.CreatedBy,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating purchase: %w", err)
		}
	}

	return nil
}
