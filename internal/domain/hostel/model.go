package hostel

import (
	"context"
	"time"
)

type Hostel struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	WardenID   *string   `json:"warden_id,omitempty"`
	Capacity   int       `json:"capacity"`
	Occupied   int       `json:"occupied"`
	Facilities []string  `json:"facilities"`
	CreatedAt  time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, h *Hostel) error
	GetByID(ctx context.Context, id string) (*Hostel, error)
	List(ctx context.Context) ([]Hostel, error)
	Update(ctx context.Context, h *Hostel) error
	Delete(ctx context.Context, id string) error
}
