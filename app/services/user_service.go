package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/repositories"
	"github.com/kicksup/kicksup/pkg/result"
)

// UpdateProfileRequest is a partial update. An absent field is left alone;
// a present one is written, even when empty.
type UpdateProfileRequest struct {
	FullName        mo.Option[string] `json:"fullName"`
	Phone           mo.Option[string] `json:"phone"`
	Address         mo.Option[string] `json:"address"`
	ProfileImageURL mo.Option[string] `json:"profileImageUrl"`
}

type UpdateRoleRequest struct {
	Role models.Role `json:"role" validate:"enum"`
}

type UserService struct {
	users  *repositories.UserRepository
	orders *repositories.OrderRepository
}

func NewUserService(users *repositories.UserRepository, orders *repositories.OrderRepository) *UserService {
	return &UserService{users: users, orders: orders}
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (result.Result[UserProfileDTO], error) {
	found, err := s.users.FindByID(ctx, id)
	if err != nil {
		return result.Result[UserProfileDTO]{}, fmt.Errorf("find user: %w", err)
	}
	u, ok := found.Get()
	if !ok {
		return result.Failure[UserProfileDTO](result.NotFound, MsgUserNotFound), nil
	}
	return result.Success(NewUserProfileDTO(u)), nil
}

func maxLen(field string, v mo.Option[string], n int) (string, bool) {
	s, ok := v.Get()
	if !ok || utf8.RuneCountInString(s) <= n {
		return "", false
	}
	return fmt.Sprintf("%s must be at most %d characters", field, n), true
}

// UpdateProfile applies the present fields. fullName is split on the first
// space into first and last name; an empty fullName keeps both.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (result.Result[UserProfileDTO], error) {
	found, err := s.users.FindByID(ctx, id)
	if err != nil {
		return result.Result[UserProfileDTO]{}, fmt.Errorf("find user: %w", err)
	}
	u, ok := found.Get()
	if !ok {
		return result.Failure[UserProfileDTO](result.NotFound, MsgUserNotFound), nil
	}

	var errs []string
	for _, check := range []struct {
		field string
		value mo.Option[string]
		max   int
	}{
		{"fullName", req.FullName, 201},
		{"phone", req.Phone, 20},
		{"address", req.Address, 200},
		{"profileImageUrl", req.ProfileImageURL, 500},
	} {
		if msg, bad := maxLen(check.field, check.value, check.max); bad {
			errs = append(errs, msg)
		}
	}
	if len(errs) > 0 {
		return result.Failures[UserProfileDTO](result.Validation, errs...), nil
	}

	if name, ok := req.FullName.Get(); ok {
		if first, last, ok := SplitFullName(name); ok {
			u.FirstName, u.LastName = first, last
		}
	}
	u.Phone = req.Phone.OrElse(u.Phone)
	u.Address = req.Address.OrElse(u.Address)
	u.ProfileImageURL = req.ProfileImageURL.OrElse(u.ProfileImageURL)

	if err := s.users.Update(ctx, &u); err != nil {
		return result.Result[UserProfileDTO]{}, fmt.Errorf("update user: %w", err)
	}
	return result.Success(NewUserProfileDTO(u)), nil
}

// SplitFullName splits on the first space. ok is false for a blank name.
func SplitFullName(full string) (first, last string, ok bool) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", "", false
	}
	first, last, _ = strings.Cut(full, " ")
	return first, strings.TrimSpace(last), true
}

// GetAllUsers lists every account, newest first.
func (s *UserService) GetAllUsers(ctx context.Context) (result.Result[[]UserDTO], error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return result.Result[[]UserDTO]{}, fmt.Errorf("list users: %w", err)
	}
	return result.Success(lo.Map(users, func(u models.User, _ int) UserDTO {
		return NewUserDTO(u)
	})), nil
}

// DeleteUser removes an account that owns no orders.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) (result.Result[bool], error) {
	found, err := s.users.FindByID(ctx, id)
	if err != nil {
		return result.Result[bool]{}, fmt.Errorf("find user: %w", err)
	}
	u, ok := found.Get()
	if !ok {
		return result.Failure[bool](result.NotFound, MsgUserNotFound), nil
	}

	owns, err := s.orders.ExistsForUser(ctx, id)
	if err != nil {
		return result.Result[bool]{}, fmt.Errorf("check orders: %w", err)
	}
	if owns {
		return result.Failure[bool](result.Conflict, MsgUserHasOrders), nil
	}

	if err := s.users.Delete(ctx, &u); err != nil {
		return result.Result[bool]{}, fmt.Errorf("delete user: %w", err)
	}
	return result.Success(true), nil
}

// UpdateUserRole sets the role unconditionally. Administrators may demote
// themselves.
func (s *UserService) UpdateUserRole(ctx context.Context, id uuid.UUID, role models.Role) (result.Result[bool], error) {
	if !role.IsValid() {
		return result.Failure[bool](result.Validation, fmt.Sprintf("invalid role %d", int(role))), nil
	}
	found, err := s.users.FindByID(ctx, id)
	if err != nil {
		return result.Result[bool]{}, fmt.Errorf("find user: %w", err)
	}
	if found.IsAbsent() {
		return result.Failure[bool](result.NotFound, MsgUserNotFound), nil
	}
	if err := s.users.SetRole(ctx, id, role); err != nil {
		return result.Result[bool]{}, fmt.Errorf("set role: %w", err)
	}
	return result.Success(true), nil
}

// PromoteByUsername grants Administrator to username. Used by the CLI.
func (s *UserService) PromoteByUsername(ctx context.Context, username string) (result.Result[UserDTO], error) {
	found, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return result.Result[UserDTO]{}, fmt.Errorf("find user: %w", err)
	}
	u, ok := found.Get()
	if !ok {
		return result.Failure[UserDTO](result.NotFound, MsgUserNotFound), nil
	}
	if err := s.users.SetRole(ctx, u.ID, models.RoleAdministrator); err != nil {
		return result.Result[UserDTO]{}, fmt.Errorf("set role: %w", err)
	}
	u.Role = models.RoleAdministrator
	return result.Success(NewUserDTO(u)), nil
}
