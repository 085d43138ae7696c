package service_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/notekeeper/internal/domain"
	"github.com/msomdec/notekeeper/internal/repository/sqlite"
	"github.com/msomdec/notekeeper/internal/result"
	"github.com/msomdec/notekeeper/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	return service.NewAuthService(db.Users(), testJWTSecret, 4, time.Hour), db
}

func register(t *testing.T, auth *service.AuthService, name, email, phone string) domain.UserProfile {
	t.Helper()
	r := auth.Register(context.Background(), service.RegisterInput{
		Name: name, Email: email, Phone: phone, Password: "password123",
	})
	require.True(t, r.IsSuccess(), "register %s: %v", email, r.Errors())
	profile, _ := r.Data()
	return profile
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)

	profile := register(t, auth, "New User", "new@example.com", "555-0100")
	assert.NotEqual(t, uuid.Nil, profile.ID)
	assert.Equal(t, "new@example.com", profile.Email)
	assert.Equal(t, "555-0100", profile.Phone)
	assert.False(t, profile.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, profile.CreatedAt.Location())
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	register(t, auth, "User 1", "dup@example.com", "")

	r := auth.Register(context.Background(), service.RegisterInput{
		Name: "User 2", Email: "dup@example.com", Password: "password456",
	})
	require.False(t, r.IsSuccess())
	require.Equal(t, result.CodeEmailAlreadyExists, r.FirstCode())
	require.Equal(t, "email", r.Errors()[0].Field)
}

func TestAuthService_Register_ConflictPrecedence(t *testing.T) {
	auth, _ := newTestAuthService(t)
	register(t, auth, "taken", "taken@example.com", "555-0101")

	tests := []struct {
		name string
		in   service.RegisterInput
		want result.Code
	}{
		{"email before name and phone", service.RegisterInput{Name: "taken", Email: "taken@example.com", Phone: "555-0101"}, result.CodeEmailAlreadyExists},
		{"name before phone", service.RegisterInput{Name: "taken", Email: "fresh@example.com", Phone: "555-0101"}, result.CodeNameAlreadyExists},
		{"phone", service.RegisterInput{Name: "fresh", Email: "fresh@example.com", Phone: "555-0101"}, result.CodePhoneAlreadyExists},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Password = "password123"
			r := auth.Register(context.Background(), tc.in)
			require.False(t, r.IsSuccess())
			require.Len(t, r.Errors(), 1)
			require.Equal(t, tc.want, r.FirstCode())
		})
	}
}

func TestAuthService_Register_BlankPhoneSkipsPhoneCheck(t *testing.T) {
	auth, _ := newTestAuthService(t)
	register(t, auth, "one", "one@example.com", "")
	register(t, auth, "two", "two@example.com", "   ")
}

func TestAuthService_Register_Validation(t *testing.T) {
	auth, _ := newTestAuthService(t)

	tests := []struct {
		name   string
		in     service.RegisterInput
		fields []string
	}{
		{"everything missing", service.RegisterInput{}, []string{"name", "email", "password"}},
		{"empty name", service.RegisterInput{Email: "a@b.com", Password: "password123"}, []string{"name"}},
		{"name too long", service.RegisterInput{Name: strings.Repeat("n", 51), Email: "a@b.com", Password: "password123"}, []string{"name"}},
		{"bad email", service.RegisterInput{Name: "n", Email: "not-an-email", Password: "password123"}, []string{"email"}},
		{"display-name email", service.RegisterInput{Name: "n", Email: "Bob <bob@example.com>", Password: "password123"}, []string{"email"}},
		{"phone too long", service.RegisterInput{Name: "n", Email: "a@b.com", Phone: strings.Repeat("1", 101), Password: "password123"}, []string{"phone"}},
		{"short password", service.RegisterInput{Name: "n", Email: "a@b.com", Password: "short"}, []string{"password"}},
		{"password over 72 bytes", service.RegisterInput{Name: "n", Email: "a@b.com", Password: strings.Repeat("p", 73)}, []string{"password"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := auth.Register(context.Background(), tc.in)
			require.False(t, r.IsSuccess())

			var fields []string
			for _, e := range r.Errors() {
				require.Equal(t, result.CodeValidation, e.Code)
				fields = append(fields, e.Field)
			}
			require.Equal(t, tc.fields, fields)
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	profile := register(t, auth, "Login User", "login@example.com", "")

	r := auth.Login(context.Background(), "login@example.com", "password123")
	require.True(t, r.IsSuccess())
	session, _ := r.Data()
	require.NotEmpty(t, session.Token)
	require.Equal(t, profile.ID, session.User.ID)
	require.True(t, session.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_DoesNotRevealAccounts(t *testing.T) {
	auth, _ := newTestAuthService(t)
	register(t, auth, "User", "wrongpw@example.com", "")
	ctx := context.Background()

	wrongPassword := auth.Login(ctx, "wrongpw@example.com", "wrongpassword")
	unknownEmail := auth.Login(ctx, "nobody@example.com", "password123")

	require.False(t, wrongPassword.IsSuccess())
	require.False(t, unknownEmail.IsSuccess())
	require.Equal(t, wrongPassword.Errors(), unknownEmail.Errors())
	require.Equal(t, wrongPassword.Message(), unknownEmail.Message())
	require.Equal(t, result.CodeInvalidCredentials, unknownEmail.FirstCode())
}

func TestAuthService_GetProfile(t *testing.T) {
	auth, _ := newTestAuthService(t)
	profile := register(t, auth, "Profile", "profile@example.com", "")

	r := auth.GetProfile(context.Background(), profile.ID)
	require.True(t, r.IsSuccess())
	got, _ := r.Data()
	require.Equal(t, profile.Email, got.Email)

	missing := auth.GetProfile(context.Background(), uuid.New())
	require.Equal(t, result.CodeNotFound, missing.FirstCode())
}

func TestAuthService_GetProfile_SoftDeleted(t *testing.T) {
	auth, db := newTestAuthService(t)
	profile := register(t, auth, "Gone", "gone@example.com", "")

	_, err := db.SqlDB.Exec(`UPDATE users SET deleted_at = ? WHERE id = ?`, time.Now().UTC(), profile.ID.String())
	require.NoError(t, err)

	require.Equal(t, result.CodeNotFound, auth.GetProfile(context.Background(), profile.ID).FirstCode())
	require.Equal(t, result.CodeInvalidCredentials, auth.Login(context.Background(), "gone@example.com", "password123").FirstCode())
}

func TestAuthService_JWT_GenerateAndValidate(t *testing.T) {
	auth, _ := newTestAuthService(t)
	profile := register(t, auth, "JWT User", "jwt@example.com", "")

	session, ok := auth.Login(context.Background(), "jwt@example.com", "password123").Data()
	require.True(t, ok)

	userID, err := auth.ValidateToken(session.Token)
	require.NoError(t, err)
	require.Equal(t, profile.ID, userID)
}

func TestAuthService_JWT_InvalidToken(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.ValidateToken("not-a-valid-jwt")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_JWT_TamperedToken(t *testing.T) {
	auth, _ := newTestAuthService(t)
	register(t, auth, "Tamper", "tamper@example.com", "")

	session, _ := auth.Login(context.Background(), "tamper@example.com", "password123").Data()

	// Tamper with the token by flipping several characters in the signature.
	tampered := session.Token[:len(session.Token)-5] + "XXXXX"
	_, err := auth.ValidateToken(tampered)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_JWT_WrongSecret(t *testing.T) {
	auth1, db := newTestAuthService(t)
	register(t, auth1, "Secret", "secret@example.com", "")
	session, _ := auth1.Login(context.Background(), "secret@example.com", "password123").Data()

	auth2 := service.NewAuthService(db.Users(), "a-completely-different-secret-value!", 4, time.Hour)
	_, err := auth2.ValidateToken(session.Token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_JWT_Rejects(t *testing.T) {
	auth, _ := newTestAuthService(t)

	sign := func(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{"expired", sign(jwt.SigningMethodHS256, []byte(testJWTSecret), jwt.MapClaims{"sub": uuid.NewString(), "exp": time.Now().Add(-time.Hour).Unix()})},
		{"no expiry", sign(jwt.SigningMethodHS256, []byte(testJWTSecret), jwt.MapClaims{"sub": uuid.NewString()})},
		{"subject not a uuid", sign(jwt.SigningMethodHS256, []byte(testJWTSecret), jwt.MapClaims{"sub": "42", "exp": future})},
		{"alg none", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": uuid.NewString(), "exp": future})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.ValidateToken(tc.token)
			require.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
