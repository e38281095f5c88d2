package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medibridge/medibridge/internal/platform/httpx"
	"github.com/medibridge/medibridge/internal/platform/token"
)

// pinLength is the length of the doctor-portal verification code; it is
// matched against the same number of trailing characters of the stored
// contact number.
const pinLength = 4

type Service struct {
	users  Repository
	tokens *token.Issuer
}

func NewService(users Repository, tokens *token.Issuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// SignupInput carries the signup form fields.
type SignupInput struct {
	Name             string            `json:"name"`
	Age              int               `json:"age"`
	Gender           string            `json:"gender"`
	BloodGroup       string            `json:"bloodGroup"`
	Contact          string            `json:"contact"`
	Email            string            `json:"email"`
	Password         string            `json:"password"`
	PIN              int               `json:"pin"`
	EmergencyContact *EmergencyContact `json:"emergencyContact"`
	ProfileImage     *string           `json:"profileImage"`
}

// AuthResult pairs a freshly issued credential with the identity it binds.
type AuthResult struct {
	Token string
	User  *User
}

// Signup registers a new identity and issues a session credential. A duplicate
// email fails with a conflict whether it is caught by the existence check or
// by the unique constraint racing a concurrent signup.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if in.Name == "" || in.Age == 0 || in.Gender == "" || in.BloodGroup == "" ||
		in.Contact == "" || in.Email == "" || in.Password == "" {
		return nil, httpx.Validation("all fields are required")
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, httpx.Conflict("user already exists")
	case !errors.Is(err, ErrNotFound):
		return nil, httpx.Storage(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, httpx.Storage(err)
	}

	u := &User{
		Name:             in.Name,
		Age:              in.Age,
		Gender:           in.Gender,
		BloodGroup:       in.BloodGroup,
		Contact:          in.Contact,
		Email:            in.Email,
		PasswordHash:     string(hash),
		PIN:              in.PIN,
		EmergencyContact: in.EmergencyContact,
		ProfileImage:     in.ProfileImage,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, httpx.Conflict("user already exists")
		}
		return nil, httpx.Storage(err)
	}

	tok, err := s.tokens.Issue(u.ID.String())
	if err != nil {
		return nil, httpx.Storage(err)
	}
	return &AuthResult{Token: tok, User: u}, nil
}

// Signin verifies email and password and issues a fresh credential. Unknown
// email and wrong password collapse into one error so account existence does
// not leak.
func (s *Service) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, httpx.Validation("email and password are required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httpx.Authorization("invalid credentials")
		}
		return nil, httpx.Storage(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, httpx.Authorization("invalid credentials")
	}

	tok, err := s.tokens.Issue(u.ID.String())
	if err != nil {
		return nil, httpx.Storage(err)
	}
	return &AuthResult{Token: tok, User: u}, nil
}

// Get returns the identity by primary identifier.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, httpx.Storage(err)
	}
	return u, nil
}

// VerifyPIN is the doctor-portal verification: the supplied code must equal,
// as a literal string, the last four characters of the stored contact number.
// Both operands are trimmed first; there is no numeric coercion.
func (s *Service) VerifyPIN(ctx context.Context, id uuid.UUID, input string) error {
	code := strings.TrimSpace(input)
	if len(code) != pinLength || !isDigits(code) {
		return httpx.Validation("a 4-digit code is required")
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.NotFound("user not found")
		}
		return httpx.Storage(err)
	}

	contact := strings.TrimSpace(u.Contact)
	if len(contact) < pinLength || contact[len(contact)-pinLength:] != code {
		return httpx.Authorization("pin incorrect")
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
