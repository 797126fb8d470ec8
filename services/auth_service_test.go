package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
	"github.com/kwesi-koranteng/cityhub-backend/models"
)

type fakeUserRepo struct {
	nextID  uint
	byEmail map[string]*models.User
	byID    map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uint]*models.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return apperrors.Conflict("duplicate value for unique field")
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	stored := *user
	f.byEmail[user.Email] = &stored
	f.byID[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := f.byEmail[email]; ok {
		out := *user
		return &out, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if user, ok := f.byID[id]; ok {
		out := *user
		return &out, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uint, name, email string) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	if other, exists := f.byEmail[email]; exists && other.ID != id {
		return nil, apperrors.Conflict("duplicate value for unique field")
	}
	delete(f.byEmail, user.Email)
	user.Name = name
	user.Email = email
	f.byEmail[email] = user
	out := *user
	return &out, nil
}

var testSecret = []byte("test-secret")

func newTestAuthService(repo *fakeUserRepo) AuthService {
	return NewAuthService(repo, testSecret, time.Hour, 0)
}

func TestRegisterHashesPasswordAndForcesUserRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	response, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Ama Mensah",
		Email:    "ama@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, response.User.Role)
	assert.NotEmpty(t, response.Token)

	stored := repo.byEmail["ama@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	req := models.RegisterRequest{Name: "Ama", Email: "ama@example.com", Password: "password123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Ama", Email: "ama@example.com", Password: "password123",
	})
	require.NoError(t, err)

	response, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "ama@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email: "ama@example.com", Password: "wrong",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthenticated))

	// Unknown email reports the same error as a bad password.
	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthenticated))
	assert.Equal(t, "invalid credentials", apperrors.PublicMessage(err))
}

func TestTokenCarriesIdentityClaims(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	response, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Ama", Email: "ama@example.com", Password: "password123",
	})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(response.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, float64(response.User.ID), claims["user_id"])
	assert.Equal(t, "ama@example.com", claims["email"])
	assert.Equal(t, string(models.RoleUser), claims["role"])
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	response, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Ama", Email: "ama@example.com", Password: "password123",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), response.User.ID, models.UpdateProfileRequest{
		Name: "Ama M.", Email: "ama.m@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ama M.", updated.Name)
	assert.Equal(t, "ama.m@example.com", updated.Email)

	_, err = svc.Register(context.Background(), models.RegisterRequest{
		Name: "Other", Email: "other@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), response.User.ID, models.UpdateProfileRequest{
		Name: "Ama", Email: "other@example.com",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}
