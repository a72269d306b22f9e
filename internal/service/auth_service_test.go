package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fuelflow/internal/config"
	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 2

	userRepo := repository.NewUserRepository(db)
	return NewAuthService(cfg, userRepo), userRepo
}

func seedAuthUser(t *testing.T, svc *AuthService, repo repository.UserRepository, status string) *models.User {
	t.Helper()
	hash, err := svc.HashPassword("password1")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		Username:     "goran",
		PasswordHash: hash,
		FullName:     "Goran S",
		Department:   constants.DepartmentSales,
		Status:       status,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestAuthServiceLoginIssuesToken(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	seedAuthUser(t, svc, repo, constants.UserStatusActive)

	user, token, expiresAt, err := svc.Login("goran", "password1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if time.Until(expiresAt) <= time.Hour {
		t.Fatalf("expiry should honor configured hours, got %v", expiresAt)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("login should record last login time")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "goran" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Department != constants.DepartmentSales {
		t.Fatalf("department claim want Sales got %s", claims.Department)
	}
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	seedAuthUser(t, svc, repo, constants.UserStatusActive)

	if _, _, _, err := svc.Login("goran", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("missing", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
}

func TestAuthServiceLoginDisabledUser(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	seedAuthUser(t, svc, repo, constants.UserStatusDisabled)

	if _, _, _, err := svc.Login("goran", "password1"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("want ErrUserDisabled got %v", err)
	}
}

func TestAuthServiceParseRejectsTamperedToken(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	user := seedAuthUser(t, svc, repo, constants.UserStatusActive)

	token, _, err := svc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatalf("tampered token should not parse")
	}
	if _, err := svc.ParseJWT("not-a-token"); err == nil {
		t.Fatalf("garbage token should not parse")
	}
}

func TestAuthServiceChangePasswordBumpsTokenVersion(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	user := seedAuthUser(t, svc, repo, constants.UserStatusActive)

	if err := svc.ChangePassword(user.ID, "wrong", "newpassword1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}

	if err := svc.ChangePassword(user.ID, "password1", "newpassword1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	updated, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if updated.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", user.TokenVersion+1, updated.TokenVersion)
	}
	if err := svc.VerifyPassword(updated.PasswordHash, "newpassword1"); err != nil {
		t.Fatalf("new password should verify: %v", err)
	}
	if _, _, _, err := svc.Login("goran", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should stop working, got %v", err)
	}
}
