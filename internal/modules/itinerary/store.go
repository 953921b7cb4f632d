// README: Itinerary store backed by PostgreSQL.
package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewStore(db *pgxpool.Pool, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

const selectColumns = `id, user_id, title, location, days, data, created_at`

func (s *Store) Create(ctx context.Context, it *Itinerary) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO itineraries (user_id, title, location, days, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		it.UserID, it.Title, it.Location, it.Days, string(normalizeData(it.Data)),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert itinerary: %w", err)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*Itinerary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	row := s.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM itineraries WHERE id = $1`, id)
	it, err := scanItinerary(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get itinerary: %w", err)
	}
	return it, nil
}

func (s *Store) ListByUser(ctx context.Context, userID int64) ([]Itinerary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+selectColumns+`
		FROM itineraries
		WHERE user_id = $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list itineraries: %w", err)
	}
	defer rows.Close()

	out := []Itinerary{}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan itinerary: %w", err)
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list itineraries: %w", err)
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, id int64, cmd UpdateCommand) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tag, err := s.db.Exec(ctx, `
		UPDATE itineraries
		SET title = $1, location = $2, days = $3, data = $4
		WHERE id = $5`,
		cmd.Title, cmd.Location, cmd.Days, string(normalizeData(cmd.Data)), id,
	)
	if err != nil {
		return false, fmt.Errorf("update itinerary: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM itineraries WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete itinerary: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanItinerary(row pgx.Row) (*Itinerary, error) {
	var it Itinerary
	var data string
	if err := row.Scan(&it.ID, &it.UserID, &it.Title, &it.Location, &it.Days, &data, &it.CreatedAt); err != nil {
		return nil, err
	}
	it.Data = normalizeData(json.RawMessage(data))
	return &it, nil
}
