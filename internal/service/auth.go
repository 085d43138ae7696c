package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/msomdec/notekeeper/internal/domain"
	"github.com/msomdec/notekeeper/internal/result"
)

const (
	nameMaxLength     = 50
	emailMaxLength    = 100
	phoneMaxLength    = 100
	passwordMinLength = 8
	// bcrypt ignores everything past 72 bytes.
	passwordMaxBytes = 72

	invalidCredentials = "Invalid email or password"
)

// RegisterInput carries the fields of a new account. Phone is optional.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// AuthService handles user registration, login, and JWT token operations.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
	tokenTTL   time.Duration

	clock func() time.Time
	idGen func() uuid.UUID
}

// NewAuthService creates a new AuthService. A non-positive tokenTTL falls
// back to 24 hours.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		tokenTTL:   tokenTTL,
		clock:      time.Now,
		idGen:      uuid.New,
	}
}

// Register validates in, enforces email, name and phone uniqueness in that
// order, and stores a new account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) result.Result[domain.UserProfile] {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if errs := validateRegister(in); len(errs) > 0 {
		return result.FailMany[domain.UserProfile](errs, "Validation failed")
	}

	if conflict, err := s.findConflict(ctx, in); err != nil {
		return fault[domain.UserProfile](ctx, "check account uniqueness", err)
	} else if conflict != nil {
		return result.FailWith[domain.UserProfile](*conflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return fault[domain.UserProfile](ctx, "hash password", err)
	}

	user := &domain.User{
		ID:           s.idGen(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		CreatedAt:    s.clock().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race against a concurrent registration.
		if conflict, ok := duplicateConflict(err, in); ok {
			return result.FailWith[domain.UserProfile](conflict)
		}
		return fault[domain.UserProfile](ctx, "create user", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return result.Success(user.Profile(), "User registered successfully")
}

func (s *AuthService) findConflict(ctx context.Context, in RegisterInput) (*result.Error, error) {
	checks := []struct {
		skip   bool
		exists func(context.Context, string) (bool, error)
		value  string
		err    error
	}{
		{exists: s.users.ExistsByEmail, value: in.Email, err: domain.ErrDuplicateEmail},
		{exists: s.users.ExistsByName, value: in.Name, err: domain.ErrDuplicateName},
		{skip: in.Phone == "", exists: s.users.ExistsByPhone, value: in.Phone, err: domain.ErrDuplicatePhone},
	}
	for _, c := range checks {
		if c.skip {
			continue
		}
		found, err := c.exists(ctx, c.value)
		if err != nil {
			return nil, err
		}
		if found {
			conflict, _ := duplicateConflict(c.err, in)
			return &conflict, nil
		}
	}
	return nil, nil
}

func duplicateConflict(err error, in RegisterInput) (result.Error, bool) {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return result.Conflict(result.CodeEmailAlreadyExists, "email",
			fmt.Sprintf("Email '%s' is already registered", in.Email)), true
	case errors.Is(err, domain.ErrDuplicateName):
		return result.Conflict(result.CodeNameAlreadyExists, "name",
			fmt.Sprintf("Name '%s' is already taken", in.Name)), true
	case errors.Is(err, domain.ErrDuplicatePhone):
		return result.Conflict(result.CodePhoneAlreadyExists, "phone",
			fmt.Sprintf("Phone number '%s' is already taken", in.Phone)), true
	default:
		return result.Error{}, false
	}
}

func validateRegister(in RegisterInput) []result.Error {
	var errs []result.Error

	switch {
	case in.Name == "":
		errs = append(errs, result.Validation("name", "Name is required"))
	case utf8.RuneCountInString(in.Name) > nameMaxLength:
		errs = append(errs, result.Validation("name", fmt.Sprintf("Name must be at most %d characters", nameMaxLength)))
	}

	switch {
	case in.Email == "":
		errs = append(errs, result.Validation("email", "Email is required"))
	case utf8.RuneCountInString(in.Email) > emailMaxLength:
		errs = append(errs, result.Validation("email", fmt.Sprintf("Email must be at most %d characters", emailMaxLength)))
	case !validEmail(in.Email):
		errs = append(errs, result.Validation("email", "Email is not a valid address"))
	}

	if utf8.RuneCountInString(in.Phone) > phoneMaxLength {
		errs = append(errs, result.Validation("phone", fmt.Sprintf("Phone must be at most %d characters", phoneMaxLength)))
	}

	switch {
	case in.Password == "":
		errs = append(errs, result.Validation("password", "Password is required"))
	case utf8.RuneCountInString(in.Password) < passwordMinLength:
		errs = append(errs, result.Validation("password", fmt.Sprintf("Password must be at least %d characters", passwordMinLength)))
	case len(in.Password) > passwordMaxBytes:
		errs = append(errs, result.Validation("password", fmt.Sprintf("Password must be at most %d bytes", passwordMaxBytes)))
	}

	return errs
}

// validEmail accepts a bare address only, not "Name <addr>".
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// Login verifies credentials and issues a signed token. Unknown emails and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) result.Result[domain.AuthSession] {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return result.FailWith[domain.AuthSession](result.Business(result.CodeInvalidCredentials, invalidCredentials))
	}

	user, err := s.users.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return result.FailWith[domain.AuthSession](result.Business(result.CodeInvalidCredentials, invalidCredentials))
		}
		return fault[domain.AuthSession](ctx, "get user by email", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return result.FailWith[domain.AuthSession](result.Business(result.CodeInvalidCredentials, invalidCredentials))
	}

	// The account may have been removed between the two reads.
	user, err = s.users.GetActiveByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return result.FailWith[domain.AuthSession](result.Business(result.CodeInvalidCredentials, invalidCredentials))
		}
		return fault[domain.AuthSession](ctx, "get user by id", err)
	}

	token, expiresAt, err := s.generateJWT(user)
	if err != nil {
		return fault[domain.AuthSession](ctx, "generate jwt", err)
	}

	return result.Success(domain.AuthSession{
		User:      user.Profile(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, "Login successful")
}

// GetProfile returns the active account with the given id.
func (s *AuthService) GetProfile(ctx context.Context, id uuid.UUID) result.Result[domain.UserProfile] {
	user, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return result.FailWith[domain.UserProfile](result.NotFound("User"))
		}
		return fault[domain.UserProfile](ctx, "get profile", err)
	}
	return result.Success(user.Profile(), "Profile retrieved successfully")
}

// ValidateToken parses and validates a JWT token string.
// Returns the user ID from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.clock), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrUnauthorized
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	return userID, nil
}

func (s *AuthService) generateJWT(user *domain.User) (string, time.Time, error) {
	now := s.clock()
	expiresAt := now.Add(s.tokenTTL).UTC().Truncate(time.Second)
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
