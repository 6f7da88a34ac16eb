package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"hostel-system/internal/domain/hostel"
)

type HostelRepo struct {
	db *sql.DB
}

func NewHostelRepo(db *sql.DB) *HostelRepo {
	return &HostelRepo{db: db}
}

func (r *HostelRepo) Create(ctx context.Context, h *hostel.Hostel) error {
	fac, err := json.Marshal(h.Facilities)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO hostels (id, name, warden_id, capacity, occupied, facilities)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at
    `
	err = r.db.QueryRowContext(ctx, query, h.ID, h.Name, h.WardenID, h.Capacity, h.Occupied, fac).
		Scan(&h.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return hostel.ErrNameTaken
	}
	return err
}

func (r *HostelRepo) GetByID(ctx context.Context, id string) (*hostel.Hostel, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, warden_id, capacity, occupied, facilities, created_at
        FROM hostels WHERE id = $1
    `, id)
	return scanHostel(row)
}

func (r *HostelRepo) List(ctx context.Context) ([]hostel.Hostel, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, warden_id, capacity, occupied, facilities, created_at
        FROM hostels ORDER BY name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []hostel.Hostel
	for rows.Next() {
		h, err := scanHostel(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *h)
	}
	return res, rows.Err()
}

func (r *HostelRepo) Update(ctx context.Context, h *hostel.Hostel) error {
	fac, err := json.Marshal(h.Facilities)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
        UPDATE hostels
        SET name = $1, warden_id = $2, capacity = $3, occupied = $4, facilities = $5
        WHERE id = $6
    `, h.Name, h.WardenID, h.Capacity, h.Occupied, fac, h.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return hostel.ErrNameTaken
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return hostel.ErrHostelNotFound
	}
	return nil
}

func (r *HostelRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hostels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return hostel.ErrHostelNotFound
	}
	return nil
}

func scanHostel(row rowScanner) (*hostel.Hostel, error) {
	h := &hostel.Hostel{}
	var facRaw []byte
	err := row.Scan(&h.ID, &h.Name, &h.WardenID, &h.Capacity, &h.Occupied, &facRaw, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hostel.ErrHostelNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(facRaw, &h.Facilities); err != nil {
		return nil, err
	}
	return h, nil
}
