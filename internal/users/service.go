package users

import (
	"errors"
	"fmt"
	"time"

	"eventhub/internal/auth"
	"eventhub/internal/models"
	"eventhub/internal/users/db"
)

// ErrInvalidCredentials covers both an unknown email and a password mismatch
// so callers cannot tell which check failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

type UserDBLayer interface {
	CreateUser(user models.User) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	ListUsers() ([]models.User, error)
	UpdateUser(id int64, upd models.UserUpdate) (*models.User, error)
	DeleteUser(id int64) (bool, error)
}

type UserService struct {
	DB UserDBLayer
}

func NewUserService(db UserDBLayer) *UserService {
	return &UserService{DB: db}
}

// Signup hashes the password and persists a new user. Duplicate emails fail
// with db.ErrEmailExists before any row is written.
func (s *UserService) Signup(email, password, name string) (*models.User, error) {
	existing, err := s.DB.GetUserByEmail(email)
	if err != nil && !errors.Is(err, db.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, db.ErrEmailExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.DB.CreateUser(models.User{
		Email:     email,
		Password:  hash,
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// Login returns the user iff the email exists and the password verifies
// against the stored digest.
func (s *UserService) Login(email, password string) (*models.User, error) {
	user, err := s.DB.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUser(id int64) (*models.User, error) {
	return s.DB.GetUserByID(id)
}

func (s *UserService) ListUsers() ([]models.User, error) {
	return s.DB.ListUsers()
}

// UpdateUser applies a partial update. A present password is re-hashed before
// it reaches the store.
func (s *UserService) UpdateUser(id int64, upd models.UserUpdate) (*models.User, error) {
	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		upd.Password = &hash
	}
	return s.DB.UpdateUser(id, upd)
}

func (s *UserService) DeleteUser(id int64) (bool, error) {
	return s.DB.DeleteUser(id)
}
