package usecase

import (
	"context"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/situation_dashboard/internal/conf"
	"github.com/iWorld-y/situation_dashboard/internal/domain"
)

// mockUserRepo 模拟用户仓库
type mockUserRepo struct {
	users map[string]*domain.User
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *domain.User) error {
	if m.users == nil {
		m.users = map[string]*domain.User{}
	}
	u.ID = len(m.users) + 1
	m.users[u.Username] = u
	return nil
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, kerrors.NotFound("USER_NOT_FOUND", "user not found")
}

func TestUserUseCase_RegisterLoginParse(t *testing.T) {
	repo := &mockUserRepo{}
	uc := NewUserUseCase(repo, &conf.Auth{JwtKey: "test-key"}, log.DefaultLogger)
	ctx := context.Background()

	if err := uc.Register(ctx, "coordinator", "s3cret-pass"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := uc.Login(ctx, "coordinator", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}

	username, err := uc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if username != "coordinator" {
		t.Errorf("ParseToken() subject = %s, want coordinator", username)
	}
}

func TestUserUseCase_LoginWrongPassword(t *testing.T) {
	repo := &mockUserRepo{}
	uc := NewUserUseCase(repo, nil, log.DefaultLogger)
	ctx := context.Background()

	if err := uc.Register(ctx, "assessor", "right-password"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Login(ctx, "assessor", "wrong-password"); !kerrors.IsUnauthorized(err) {
		t.Errorf("Login() error = %v, want Unauthorized", err)
	}
}

func TestUserUseCase_RegisterValidation(t *testing.T) {
	uc := NewUserUseCase(&mockUserRepo{}, nil, log.DefaultLogger)
	if err := uc.Register(context.Background(), "", "whatever-pass"); !kerrors.IsBadRequest(err) {
		t.Errorf("empty username error = %v, want BadRequest", err)
	}
	if err := uc.Register(context.Background(), "user", "short"); !kerrors.IsBadRequest(err) {
		t.Errorf("short password error = %v, want BadRequest", err)
	}
}

func TestUserUseCase_ParseTokenRejectsGarbage(t *testing.T) {
	uc := NewUserUseCase(&mockUserRepo{}, &conf.Auth{JwtKey: "key-a"}, log.DefaultLogger)
	if _, err := uc.ParseToken("not-a-token"); !kerrors.IsUnauthorized(err) {
		t.Errorf("ParseToken(garbage) error = %v, want Unauthorized", err)
	}

	// 另一个密钥签发的 token 不被接受
	other := NewUserUseCase(&mockUserRepo{}, &conf.Auth{JwtKey: "key-b"}, log.DefaultLogger)
	if err := other.Register(context.Background(), "intruder", "password-123"); err != nil {
		t.Fatal(err)
	}
	token, err := other.Login(context.Background(), "intruder", "password-123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uc.ParseToken(token); !kerrors.IsUnauthorized(err) {
		t.Errorf("foreign token error = %v, want Unauthorized", err)
	}
}
