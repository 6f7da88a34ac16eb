package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type memoryUserRepo struct {
	mu     sync.Mutex
	users  map[string]*User
	byMail map[string]string
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users:  make(map[string]*User),
		byMail: make(map[string]string),
	}
}

func (r *memoryUserRepo) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byMail[u.Email]; ok {
		return ErrEmailTaken
	}
	u.CreatedAt = time.Now()
	copyUser := *u
	r.users[u.ID] = &copyUser
	r.byMail[u.Email] = u.ID
	return nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byMail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	copyUser := *r.users[id]
	return &copyUser, nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copyUser := *u
	return &copyUser, nil
}

func (r *memoryUserRepo) List(ctx context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]User, 0, len(r.users))
	for _, u := range r.users {
		res = append(res, *u)
	}
	return res, nil
}

func (r *memoryUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *memoryUserRepo) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.RoomNumber != nil {
		u.RoomNumber = upd.RoomNumber
	}
	if upd.Phone != nil {
		u.Phone = upd.Phone
	}
	if upd.EmailNotifications != nil {
		u.EmailNotifications = *upd.EmailNotifications
	}
	return nil
}

func (r *memoryUserRepo) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.IsActive = false
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newMemoryUserRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "asha@example.com", Password: "secret12", Name: "Asha"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != RoleStudent || !u.IsActive || !u.EmailNotifications {
		t.Fatalf("unexpected defaults %+v", u)
	}
	if u.PasswordHash == "secret12" {
		t.Fatalf("password stored in the clear")
	}

	if _, err := svc.Register(ctx, RegisterInput{Email: "asha@example.com", Password: "other", Name: "Dup"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := svc.Login(ctx, "asha@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	got, err := svc.Login(ctx, "asha@example.com", "secret12")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("login returned wrong user")
	}
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "ravi@example.com", Password: "secret12", Name: "Ravi"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Deactivate(ctx, u.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Login(ctx, "ravi@example.com", "secret12"); !errors.Is(err, ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
}

func TestUpdateRoleValidation(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, _ := svc.Register(ctx, RegisterInput{Email: "meera@example.com", Password: "secret12", Name: "Meera"})

	if err := svc.UpdateRole(ctx, u.ID, "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err := svc.UpdateRole(ctx, u.ID, RoleWarden); err != nil {
		t.Fatalf("promote to warden: %v", err)
	}
	got, _ := svc.GetByID(ctx, u.ID)
	if got.Role != RoleWarden {
		t.Fatalf("role %q after update", got.Role)
	}
}
