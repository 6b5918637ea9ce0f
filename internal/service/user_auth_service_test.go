package service

import (
	"errors"
	"testing"

	"github.com/shopease-next/internal/config"
	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/repository"

	"gorm.io/gorm"
)

func newUserAuthServiceForTest(db *gorm.DB) *UserAuthService {
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-user-jwt-secret-key-0123456789"
	cfg.UserJWT.ExpireHours = 1
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterNormalizesEmailAndIssuesToken(t *testing.T) {
	db := setupServiceDB(t)
	svc := newUserAuthServiceForTest(db)

	user, token, expiresAt, err := svc.Register(RegisterInput{
		Name:     "  Jane  ",
		Email:    " Jane@Example.COM ",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("email want normalized got %q", user.Email)
	}
	if user.Role != constants.RoleUser {
		t.Fatalf("role want user got %q", user.Role)
	}
	if expiresAt.IsZero() {
		t.Fatalf("expected expiry set")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	// 同一邮箱（大小写不同）不能重复注册
	if _, _, _, err := svc.Register(RegisterInput{Email: "JANE@example.com", Password: "secret123"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := newUserAuthServiceForTest(db)

	if _, _, _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "secret123"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad email want ErrInvalidEmail got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "a@example.com", Password: "short"}); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("short password want ErrInvalidPassword got %v", err)
	}
	// 角色白名单：非 admin 一律落为 user
	user, _, _, err := svc.Register(RegisterInput{Email: "b@example.com", Password: "secret123", Role: "superuser"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != constants.RoleUser {
		t.Fatalf("role want user got %q", user.Role)
	}
}

func TestLoginChecksCredentials(t *testing.T) {
	db := setupServiceDB(t)
	svc := newUserAuthServiceForTest(db)

	if _, _, _, err := svc.Register(RegisterInput{Email: "jane@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, _, err := svc.Login("jane@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token issued")
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last_login_at updated")
	}

	if _, _, _, err := svc.Login("jane@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}
}

func TestLogoutBumpsTokenVersion(t *testing.T) {
	db := setupServiceDB(t)
	svc := newUserAuthServiceForTest(db)

	user, token, _, err := svc.Register(RegisterInput{Email: "jane@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}

	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	// 登出后库内版本号递增，旧 token 的版本失配
	reloaded, err := svc.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.TokenVersion != claims.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", claims.TokenVersion+1, reloaded.TokenVersion)
	}
}

func TestUpdateProfilePartialFields(t *testing.T) {
	db := setupServiceDB(t)
	svc := newUserAuthServiceForTest(db)

	user, _, _, err := svc.Register(RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	versionBefore := user.TokenVersion

	newName := "Janet"
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Name: &newName})
	if err != nil {
		t.Fatalf("update name failed: %v", err)
	}
	if updated.Name != "Janet" || updated.Email != "jane@example.com" {
		t.Fatalf("unexpected profile after name update: %+v", updated)
	}
	if updated.TokenVersion != versionBefore {
		t.Fatalf("name change must not bump token version")
	}

	newPassword := "another-secret"
	updated, err = svc.UpdateProfile(user.ID, UpdateProfileInput{Password: &newPassword})
	if err != nil {
		t.Fatalf("update password failed: %v", err)
	}
	// 改密后旧凭证全部失效
	if updated.TokenVersion != versionBefore+1 {
		t.Fatalf("token version want %d got %d", versionBefore+1, updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("expected token_invalid_before set after password change")
	}
	if _, _, _, err := svc.Login("jane@example.com", "another-secret"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	// 改邮箱撞已有账号
	seedTestUser(t, db, "taken@example.com")
	takenEmail := "taken@example.com"
	if _, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Email: &takenEmail}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("taken email want ErrEmailExists got %v", err)
	}
}
