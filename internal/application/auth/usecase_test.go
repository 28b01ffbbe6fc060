package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fixture-cleanup/internal/application/auth"
	"github.com/jhoicas/fixture-cleanup/internal/application/dto"
	"github.com/jhoicas/fixture-cleanup/internal/domain"
	"github.com/jhoicas/fixture-cleanup/internal/domain/entity"
	pkgjwt "github.com/jhoicas/fixture-cleanup/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func newUser(t *testing.T, password string, role entity.Role, status string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:           "00000000-0000-0000-0000-000000000001",
		Email:        "ops@example.com",
		PasswordHash: string(hash),
		Name:         "Ops",
		Role:         role,
		Status:       status,
	}
}

func newUseCase(repo *mockUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"})
}

func TestLogin_OK(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "ops@example.com").
		Return(newUser(t, "s3cret-pass", entity.RoleAdmin, entity.UserStatusActive), nil)

	out, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Email: " OPS@example.com ", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.User.Role)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	repo.AssertExpectations(t)
}

func TestLogin_Errores(t *testing.T) {
	cases := []struct {
		name    string
		user    *entity.User
		repoErr error
		pass    string
		want    error
	}{
		{name: "usuario inexistente", user: nil, pass: "x", want: domain.ErrUserNotFound},
		{name: "password incorrecto", user: newUser(t, "correcta", entity.RoleAdmin, entity.UserStatusActive), pass: "otra", want: domain.ErrUnauthorized},
		{name: "cuenta inactiva", user: newUser(t, "correcta", entity.RoleAdmin, entity.UserStatusInactive), pass: "correcta", want: domain.ErrForbidden},
		{name: "fallo de DB", repoErr: errors.New("db caída"), pass: "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockUserRepo)
			repo.On("FindByEmail", mock.Anything, "ops@example.com").Return(tc.user, tc.repoErr)

			_, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Email: "ops@example.com", Password: tc.pass})
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestLogin_EntradaVacia(t *testing.T) {
	repo := new(mockUserRepo)
	_, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestResolveSession(t *testing.T) {
	uc := newUseCase(new(mockUserRepo))

	tok, err := pkgjwt.Generate(testSecret, "u1", "a@b.c", "admin", "test", 5)
	require.NoError(t, err)
	s, err := uc.ResolveSession(tok)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, s.Role)
	assert.True(t, s.Can(entity.CapabilityPurgeFixtures))

	tok, err = pkgjwt.Generate(testSecret, "u2", "", "root", "test", 5)
	require.NoError(t, err)
	s, err = uc.ResolveSession(tok)
	require.NoError(t, err, "un rol desconocido no invalida la sesión")
	assert.Equal(t, entity.Role(""), s.Role)
	assert.False(t, s.Can(entity.CapabilityPurgeFixtures))

	_, err = uc.ResolveSession("no.es.un.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
