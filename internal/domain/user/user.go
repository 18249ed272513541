package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

// User is a back-office account: staff (admin, support) or a client.
type User struct {
	id                 uint
	username           string
	displayName        string
	email              string
	phone              string
	company            string
	passwordHash       string
	role               authorization.UserRole
	mustChangePassword bool
	pm2Access          bool
	isActive           bool
	lastLoginAt        *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

func NewUser(username, email, displayName string, role authorization.UserRole, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(username) > 64 {
		return nil, fmt.Errorf("username exceeds maximum length of 64 characters")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		username:     username,
		displayName:  strings.TrimSpace(displayName),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// UserData carries every persisted field for ReconstructUser.
type UserData struct {
	ID                 uint
	Username           string
	DisplayName        string
	Email              string
	Phone              string
	Company            string
	PasswordHash       string
	Role               string
	MustChangePassword bool
	PM2Access          bool
	IsActive           bool
	LastLoginAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func ReconstructUser(d UserData) (*User, error) {
	if d.ID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:                 d.ID,
		username:           d.Username,
		displayName:        d.DisplayName,
		email:              d.Email,
		phone:              d.Phone,
		company:            d.Company,
		passwordHash:       d.PasswordHash,
		role:               authorization.ParseUserRole(d.Role),
		mustChangePassword: d.MustChangePassword,
		pm2Access:          d.PM2Access,
		isActive:           d.IsActive,
		lastLoginAt:        d.LastLoginAt,
		createdAt:          d.CreatedAt,
		updatedAt:          d.UpdatedAt,
	}, nil
}

func (u *User) ID() uint                              { return u.id }
func (u *User) Username() string                      { return u.username }
func (u *User) Email() string                         { return u.email }
func (u *User) Phone() string                         { return u.phone }
func (u *User) Company() string                       { return u.company }
func (u *User) PasswordHash() string                  { return u.passwordHash }
func (u *User) Role() authorization.UserRole          { return u.role }
func (u *User) MustChangePassword() bool              { return u.mustChangePassword }
func (u *User) PM2Access() bool                       { return u.pm2Access }
func (u *User) IsActive() bool                        { return u.isActive }
func (u *User) LastLoginAt() *time.Time               { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time                  { return u.createdAt }
func (u *User) UpdatedAt() time.Time                  { return u.updatedAt }
func (u *User) RawDisplayName() string                { return u.displayName }
func (u *User) IsStaff() bool                         { return u.role.IsStaff() }
func (u *User) HasRole(r authorization.UserRole) bool { return u.role == r }

// DisplayName falls back to the username when no name was set.
func (u *User) DisplayName() string {
	if u.displayName != "" {
		return u.displayName
	}
	return u.username
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// ChangePassword stores a password the user picked, clearing the
// forced-change flag.
func (u *User) ChangePassword(hash string) {
	u.passwordHash = hash
	u.mustChangePassword = false
	u.touch()
}

// AssignTemporaryPassword stores an administrator-issued password that must
// be changed at next login.
func (u *User) AssignTemporaryPassword(hash string) {
	u.passwordHash = hash
	u.mustChangePassword = true
	u.touch()
}

func (u *User) RecordLogin(at time.Time) {
	t := at.UTC()
	u.lastLoginAt = &t
}

func (u *User) UpdateProfile(displayName, email, phone, company string) {
	u.displayName = strings.TrimSpace(displayName)
	u.email = email
	u.phone = phone
	u.company = company
	u.touch()
}

func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.touch()
	return nil
}

func (u *User) SetActive(active bool) {
	u.isActive = active
	u.touch()
}

func (u *User) SetPM2Access(allowed bool) {
	u.pm2Access = allowed
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
}
