package user

import (
	"context"
	"time"
)

const (
	RoleStudent = "student"
	RoleWarden  = "warden"
	RoleAdmin   = "admin"
)

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleWarden || role == RoleAdmin
}

type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	HostelID           *string   `json:"hostel_id,omitempty"`
	RoomNumber         *string   `json:"room_number,omitempty"`
	Phone              *string   `json:"phone,omitempty"`
	EmailNotifications bool      `json:"email_notifications"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

type ProfileUpdate struct {
	Name               *string
	RoomNumber         *string
	Phone              *string
	EmailNotifications *bool
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id, role string) error
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error
	Deactivate(ctx context.Context, id string) error
}
