package auth

import (
	"context"
	"testing"
	"time"

	"craftmosul/internal/database"
	"craftmosul/internal/domain"
	jwtsvc "craftmosul/internal/pkg/jwt"
	"craftmosul/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Service, *gorm.DB, int64) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	profession := domain.Profession{Name: "Carpenter", NameAr: "نجار"}
	require.NoError(t, db.Create(&profession).Error)

	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewProfessionRepository(db),
		jwtsvc.New("test-secret", time.Hour),
	)
	return svc, db, profession.ID
}

func TestRegisterClient(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	user, token, err := svc.RegisterClient(ctx, RegisterClientRequest{
		Email:    "  Ahmed@Example.IQ ",
		Password: "secret-pass",
		Name:     "Ahmed",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ahmed@example.iq", user.Email)
	assert.Equal(t, domain.RoleClient, user.Role)
	assert.True(t, user.IsActive)
	assert.Empty(t, user.PasswordHash)
}

func TestRegisterClient_DuplicateEmail(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	req := RegisterClientRequest{Email: "dup@example.iq", Password: "secret-pass", Name: "First"}
	_, _, err := svc.RegisterClient(ctx, req)
	require.NoError(t, err)

	req.Name = "Second"
	_, _, err = svc.RegisterClient(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	// Case variants collide too.
	req.Email = "DUP@example.iq"
	_, _, err = svc.RegisterClient(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterWorker_CreatesProfile(t *testing.T) {
	svc, db, professionID := setup(t)
	ctx := context.Background()

	user, token, err := svc.RegisterWorker(ctx, RegisterWorkerRequest{
		Email:           "mustafa@example.iq",
		Password:        "secret-pass",
		Name:            "Mustafa",
		ProfessionID:    professionID,
		Bio:             "Fifteen years of cabinet work",
		ExperienceYears: 15,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleWorker, user.Role)

	var w domain.Worker
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&w).Error)
	assert.Equal(t, professionID, w.ProfessionID)
	assert.Equal(t, 15, w.ExperienceYears)
	assert.True(t, w.IsAvailable)
	assert.Equal(t, int64(0), w.TotalJobs)
}

func TestRegisterWorker_UnknownProfession(t *testing.T) {
	svc, db, _ := setup(t)
	ctx := context.Background()

	_, _, err := svc.RegisterWorker(ctx, RegisterWorkerRequest{
		Email:        "nobody@example.iq",
		Password:     "secret-pass",
		Name:         "Nobody",
		ProfessionID: 404,
	})
	assert.ErrorIs(t, err, ErrProfessionNotFound)

	// The user row must not exist either.
	var count int64
	require.NoError(t, db.Model(&domain.User{}).Where("email = ?", "nobody@example.iq").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestLogin(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, _, err := svc.RegisterClient(ctx, RegisterClientRequest{
		Email:    "login@example.iq",
		Password: "correct-pass",
		Name:     "Login",
	})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, LoginRequest{Email: "login@example.iq", Password: "correct-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.PasswordHash)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "login@example.iq", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "ghost@example.iq", Password: "correct-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, db, _ := setup(t)
	ctx := context.Background()

	u, _, err := svc.RegisterClient(ctx, RegisterClientRequest{
		Email:    "disabled@example.iq",
		Password: "correct-pass",
		Name:     "Disabled",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", u.ID).
		Update("is_active", false).Error)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "disabled@example.iq", Password: "correct-pass"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	u, _, err := svc.RegisterClient(ctx, RegisterClientRequest{
		Email:    "profile@example.iq",
		Password: "secret-pass",
		Name:     "Before",
	})
	require.NoError(t, err)

	name := "After"
	phone := "+964 770 000 0000"
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, phone, updated.Phone)
}
