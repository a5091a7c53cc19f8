package service

import (
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username, password string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{
		Username: username,
		Name:     "Test User",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, u.SetPassword(password))
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestLoginIssuesValidToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))
	seedUser(t, db, "cashier1", "secret123", model.RoleCashier)

	resp, err := svc.Login("cashier1", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "cashier1", resp.User.Username)

	user, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "cashier1", user.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))
	seedUser(t, db, "cashier1", "secret123", model.RoleCashier)

	_, err := svc.Login("cashier1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))
	u := seedUser(t, db, "parttimer", "secret123", model.RoleCashier)
	require.NoError(t, db.Model(u).Update("is_active", false).Error)

	_, err := svc.Login("parttimer", "secret123")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestSecondLoginInvalidatesFirstToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))
	seedUser(t, db, "cashier1", "secret123", model.RoleCashier)

	first, err := svc.Login("cashier1", "secret123")
	require.NoError(t, err)
	second, err := svc.Login("cashier1", "secret123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(first.Token)
	assert.Error(t, err)
	_, err = svc.ValidateToken(second.Token)
	assert.NoError(t, err)
}

func TestChangePasswordRotatesSession(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))
	u := seedUser(t, db, "admin1", "oldpass1", model.RoleAdmin)

	resp, err := svc.Login("admin1", "oldpass1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(u.ID, "nope", "newpass1"), ErrWrongPassword)
	require.NoError(t, svc.ChangePassword(u.ID, "oldpass1", "newpass1"))

	// Old token and old password both stop working.
	_, err = svc.ValidateToken(resp.Token)
	assert.Error(t, err)
	_, err = svc.Login("admin1", "oldpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("admin1", "newpass1")
	assert.NoError(t, err)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepo(db))

	_, err := svc.CreateUser(CreateUserRequest{
		Username: "cashier1", Name: "One", Password: "secret123", Role: model.RoleCashier,
	}, "admin")
	require.NoError(t, err)

	_, err = svc.CreateUser(CreateUserRequest{
		Username: "cashier1", Name: "Two", Password: "secret456", Role: model.RoleCashier,
	}, "admin")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestDeactivateUserKillsSession(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	authSvc := NewAuthService(userRepo)
	userSvc := NewUserService(userRepo)
	u := seedUser(t, db, "cashier2", "secret123", model.RoleCashier)

	resp, err := authSvc.Login("cashier2", "secret123")
	require.NoError(t, err)

	_, err = userSvc.UpdateUser(u.ID, UpdateUserRequest{
		Name: u.Name, Role: u.Role, IsActive: false,
	}, "admin")
	require.NoError(t, err)

	_, err = authSvc.ValidateToken(resp.Token)
	assert.Error(t, err)
}
