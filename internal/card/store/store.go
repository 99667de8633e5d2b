package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/card"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, house_id, name, last_four, closing_day, created_at, updated_at, deleted_at
func scanCard(s scanner) (*card.Card, error) {
	var c card.Card

	var lastFour sql.NullString

	if err := s.Scan(
		&c.ID, &c.HouseID, &c.Name, &lastFour, &c.ClosingDay,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	); err != nil {
		return nil, err
	}

	c.LastFour = lastFour.String

	return &c, nil
}

const selectCardColumns = `
	c.id, c.house_id, c.name, c.last_four, c.closing_day, c.created_at, c.updated_at, c.deleted_at
`

func (s *Store) CreateCard(ctx context.Context, c *card.Card) error {
	query := `
		INSERT INTO cards (house_id, name, last_four, closing_day, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.HouseID,
		c.Name,
		c.LastFour,
		c.ClosingDay,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating card: %w", err)
	}

	return nil
}

func (s *Store) GetCard(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	query := `SELECT ` + selectCardColumns + `
		FROM cards c
		WHERE c.id = $1 AND c.deleted_at IS NULL`

	c, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, card.ErrNotFound
		}

		return nil, fmt.Errorf("getting card: %w", err)
	}

	return c, nil
}

func (s *Store) ListCards(ctx context.Context, houseID uuid.UUID) ([]*card.Card, error) {
	query := `SELECT ` + selectCardColumns + `
		FROM cards c
		WHERE c.house_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.name ASC`

	rows, err := s.db.QueryContext(ctx, query, houseID)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	var cs []*card.Card

	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}

		cs = append(cs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card rows: %w", err)
	}

	return cs, nil
}

func (s *Store) UpdateCard(ctx context.Context, c *card.Card) error {
	query := `
		UPDATE cards
		SET name = $1, last_four = NULLIF($2, ''), closing_day = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Name,
		c.LastFour,
		c.ClosingDay,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}

	return nil
}

func (s *Store) DeleteCard(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE cards
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}

	return nil
}
