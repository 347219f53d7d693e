package services

import (
	"errors"

	"inkwell/app/auth"
	"inkwell/app/models"
	"inkwell/app/repo"
)

var (
	// ErrUnknownEmail and ErrWrongPassword are distinguished because
	// the login page shows a different message for each.
	ErrUnknownEmail  = errors.New("no account with that email")
	ErrWrongPassword = errors.New("incorrect password")
)

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

// Register creates a regular account. A duplicate email surfaces as
// repo.ErrDuplicate for the caller to turn into a flash message.
func (s *UserService) Register(email, password, name string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Email: email, PasswordHash: hash, Name: name, Role: models.RoleUser}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies an email/password pair. Neither failure path
// mutates any state.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	u, err := s.users.FindByEmail(email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrWrongPassword
	}
	return u, nil
}

func (s *UserService) FindByID(id uint) (*models.User, error) { return s.users.FindByID(id) }

// EnsureAdmin seeds the designated admin account on first startup.
// Idempotent; an existing row with the email wins.
func (s *UserService) EnsureAdmin(email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}
	count, err := s.users.CountByEmail(email)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.Create(&models.User{Email: email, PasswordHash: hash, Name: name, Role: models.RoleAdmin})
}
