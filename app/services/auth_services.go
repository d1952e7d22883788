package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kicksup/kicksup/app/events"
	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/repositories"
	"github.com/kicksup/kicksup/pkg/auth"
	"github.com/kicksup/kicksup/pkg/event"
	"github.com/kicksup/kicksup/pkg/result"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Age       int    `json:"age"       validate:"gte=0,lte=150"`
	// DateOfBirth is a calendar date (2006-01-02) or an RFC 3339 timestamp.
	DateOfBirth string       `json:"dateOfBirth"`
	Country     string       `json:"country"  validate:"max=100"`
	State       string       `json:"state"    validate:"max=100"`
	City        string       `json:"city"     validate:"max=100"`
	Phone       string       `json:"phone"    validate:"max=20"`
	Address     string       `json:"address"  validate:"max=200"`
	Username    string       `json:"username" validate:"required,max=50"`
	Password    string       `json:"password" validate:"required,min=6,max=100"`
	Role        *models.Role `json:"role"     validate:"omitempty,enum"`
}

type AuthService struct {
	users  *repositories.UserRepository
	events event.Dispatcher
}

func NewAuthService(users *repositories.UserRepository, events event.Dispatcher) *AuthService {
	return &AuthService{users: users, events: events}
}

// Login checks the credentials and issues a token. An unknown username and a
// wrong password fail with the same message.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (result.Result[AuthResponse], error) {
	found, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return result.Result[AuthResponse]{}, fmt.Errorf("find user: %w", err)
	}

	user, ok := found.Get()
	if !ok || !auth.CheckPassword(user.PasswordHash, req.Password) {
		fire(ctx, s.events, events.LoginAttempted{Username: req.Username, UserID: user.ID, Success: false})
		return result.Failure[AuthResponse](result.InvalidCredentials, MsgInvalidCredentials), nil
	}

	resp, err := issue(user)
	if err != nil {
		return result.Result[AuthResponse]{}, err
	}
	fire(ctx, s.events, events.LoginAttempted{Username: user.Username, UserID: user.ID, Success: true})
	return result.Success(resp), nil
}

// Register creates a Client account (or the requested role) and logs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (result.Result[AuthResponse], error) {
	taken, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return result.Result[AuthResponse]{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return result.Failure[AuthResponse](result.Validation, MsgUsernameTaken), nil
	}

	dob, err := ParseDate(req.DateOfBirth)
	if err != nil {
		return result.Failure[AuthResponse](result.Validation, err.Error()), nil
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return result.Result[AuthResponse]{}, fmt.Errorf("hash password: %w", err)
	}

	role := models.RoleClient
	if req.Role != nil {
		role = *req.Role
	}

	user := models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Age:          req.Age,
		DateOfBirth:  dob,
		Country:      req.Country,
		State:        req.State,
		City:         req.City,
		Phone:        req.Phone,
		Address:      req.Address,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return result.Result[AuthResponse]{}, fmt.Errorf("create user: %w", err)
	}

	resp, err := issue(user)
	if err != nil {
		return result.Result[AuthResponse]{}, err
	}
	fire(ctx, s.events, events.UserRegistered{UserID: user.ID, Username: user.Username, Role: user.Role})
	return result.Success(resp), nil
}

func issue(u models.User) (AuthResponse, error) {
	token, err := auth.GenerateToken(u.ID, u.Username, u.Role.String())
	if err != nil {
		return AuthResponse{}, fmt.Errorf("generate token: %w", err)
	}
	return AuthResponse{Token: token, UserID: u.ID, Username: u.Username, Role: u.Role.String()}, nil
}

// ParseDate accepts "2006-01-02" or RFC 3339 and returns the date in UTC.
// An empty string is the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("dateOfBirth %q is not a valid date", s)
}
