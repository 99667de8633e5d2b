package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/house"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateHouse inserts the house and its owner membership atomically.
func (s *Store) CreateHouse(ctx context.Context, h *house.House, owner uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	houseQuery := `
		INSERT INTO houses (name, created_by, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`
	if err := dbTx.QueryRowContext(ctx, houseQuery, h.Name, h.CreatedBy).Scan(&h.ID, &h.CreatedAt); err != nil {
		return fmt.Errorf("creating house: %w", err)
	}

	memberQuery := `
		INSERT INTO house_members (house_id, user_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := dbTx.ExecContext(ctx, memberQuery, h.ID, owner, house.RoleOwner); err != nil {
		return fmt.Errorf("creating owner membership: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetHouse(ctx context.Context, id uuid.UUID) (*house.House, error) {
	query := `
		SELECT id, name, created_by, created_at
		FROM houses
		WHERE id = $1
	`

	var h house.House
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&h.ID, &h.Name, &h.CreatedBy, &h.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, house.ErrNotFound
		}

		return nil, fmt.Errorf("getting house: %w", err)
	}

	return &h, nil
}

func (s *Store) AddMember(ctx context.Context, m *house.Member) error {
	query := `
		INSERT INTO house_members (house_id, user_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (house_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`

	_, err := s.db.ExecContext(ctx, query, m.HouseID, m.UserID, m.Role)
	if err != nil {
		return fmt.Errorf("adding member: %w", err)
	}

	return nil
}

func (s *Store) GetMember(ctx context.Context, houseID, userID uuid.UUID) (*house.Member, error) {
	query := `
		SELECT house_id, user_id, role, created_at
		FROM house_members
		WHERE house_id = $1 AND user_id = $2
	`

	var m house.Member

	var role string

	if err := s.db.QueryRowContext(ctx, query, houseID, userID).Scan(&m.HouseID, &m.UserID, &role, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, house.ErrNotMember
		}

		return nil, fmt.Errorf("getting member: %w", err)
	}

	m.Role = house.Role(role)

	return &m, nil
}

func (s *Store) ListMembers(ctx context.Context, houseID uuid.UUID) ([]*house.Member, error) {
	query := `
		SELECT house_id, user_id, role, created_at
		FROM house_members
		WHERE house_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, houseID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []*house.Member

	for rows.Next() {
		var m house.Member

		var role string

		if err := rows.Scan(&m.HouseID, &m.UserID, &role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}

		m.Role = house.Role(role)
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	return members, nil
}

func (s *Store) ListHousesByUser(ctx context.Context, userID uuid.UUID) ([]*house.House, error) {
	query := `
		SELECT h.id, h.name, h.created_by, h.created_at
		FROM houses h
		JOIN house_members m ON m.house_id = h.id
		WHERE m.user_id = $1
		ORDER BY h.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing houses: %w", err)
	}
	defer rows.Close()

	var houses []*house.House

	for rows.Next() {
		var h house.House
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning house: %w", err)
		}

		houses = append(houses, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating house rows: %w", err)
	}

	return houses, nil
}
