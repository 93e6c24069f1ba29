package user

import (
	"context"
	"errors"
	"testing"

	"kyro-backend/domain"
	"kyro-backend/entities"
	"kyro-backend/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (UserService, UserRepository) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := "file:user_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewUserRepository(db)
	return NewUserService(repo, jwt.NewJWTService()), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "ayu@example.com",
		Password: "hunter2hunter2",
		Name:     "Ayu",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Email != "ayu@example.com" || reg.ID == "" {
		t.Fatalf("register response = %+v", reg)
	}

	login, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "ayu@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Token == "" {
		t.Fatal("login returned empty token")
	}
	if login.Role != domain.RoleUser {
		t.Fatalf("role = %q, want %q", login.Role, domain.RoleUser)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := domain.RegisterRequest{Email: "ayu@example.com", Password: "hunter2hunter2", Name: "Ayu"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, req)
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("err = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "ayu@example.com", Password: "hunter2hunter2", Name: "Ayu"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, domain.LoginRequest{Email: "ayu@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("err = %v, want ErrCredentialsInvalid", err)
	}

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("unknown email err = %v, want ErrCredentialsInvalid", err)
	}
}

func TestUpdateProfileChangesDisplayNameOnly(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, domain.RegisterRequest{Email: "ayu@example.com", Password: "hunter2hunter2", Name: "Ayu"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.UpdateProfile(ctx, domain.UpdateProfileRequest{Name: "Ayu Lestari"}, reg.ID); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := repo.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Ayu Lestari" {
		t.Fatalf("name = %q, want updated display name", stored.Name)
	}
	if stored.ID.String() != reg.ID || stored.Email != "ayu@example.com" {
		t.Fatal("identity fields changed on profile update")
	}
}

func TestMeUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Me(context.Background(), uuid.New().String())
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
