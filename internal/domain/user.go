package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Username     string    `json:"username"`
	Phone        string    `json:"phone"`
	LastLogin    time.Time `json:"last_login"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsLocal reports whether the account carries a local credential. Directory
// provisioned users have an empty hash and authenticate against the
// directory only.
func (u *User) IsLocal() bool {
	return u.PasswordHash != ""
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IdentitySource tags which credential path authenticated the subject.
type IdentitySource string

const (
	SourceLocal     IdentitySource = "local"
	SourceDirectory IdentitySource = "directory"
)

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresIn int64          `json:"expires_in"`
	Source    IdentitySource `json:"source"`
	User      *UserInfo      `json:"user"`
}

type UserInfo struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	LastLogin time.Time `json:"last_login"`
}

// Canonical role set; roles are seeded by migration and referenced by name.
const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleCleaner  = "Cleaner"
	RoleCustomer = "Customer"
)

var validRoles = map[string]bool{
	RoleAdmin:    true,
	RoleManager:  true,
	RoleCleaner:  true,
	RoleCustomer: true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if r.Username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if r.Phone != "" && !isValidPhone(r.Phone) {
		return fmt.Errorf("%w: invalid phone format", ErrValidation)
	}
	return nil
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("%w: login is required", ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		LastLogin: u.LastLogin,
	}
}

func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[\+]?[\d\s\-\(\)]+$`)
	return phoneRegex.MatchString(phone) && len(phone) >= 7
}
