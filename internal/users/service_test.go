package users_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/auth"
	"eventhub/internal/models"
	"eventhub/internal/users"
	"eventhub/internal/users/db"
)

// MockUserDB is a map-backed implementation of the UserDBLayer interface
type MockUserDB struct {
	users         map[int64]*models.User
	nextID        int64
	shouldFailOn  string
	errorToReturn error
}

func NewMockUserDB() *MockUserDB {
	return &MockUserDB{
		users:  make(map[int64]*models.User),
		nextID: 1,
	}
}

func (m *MockUserDB) CreateUser(user models.User) (*models.User, error) {
	if m.shouldFailOn == "CreateUser" {
		return nil, m.errorToReturn
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, db.ErrEmailExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = &user
	return &user, nil
}

func (m *MockUserDB) GetUserByEmail(email string) (*models.User, error) {
	if m.shouldFailOn == "GetUserByEmail" {
		return nil, m.errorToReturn
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, db.ErrUserNotFound
}

func (m *MockUserDB) GetUserByID(id int64) (*models.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, db.ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserDB) ListUsers() ([]models.User, error) {
	var list []models.User
	for _, u := range m.users {
		list = append(list, *u)
	}
	return list, nil
}

func (m *MockUserDB) UpdateUser(id int64, upd models.UserUpdate) (*models.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, db.ErrUserNotFound
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	return u, nil
}

func (m *MockUserDB) DeleteUser(id int64) (bool, error) {
	_, exists := m.users[id]
	if !exists {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

func TestSignupHashesPassword(t *testing.T) {
	mockDB := NewMockUserDB()
	service := users.NewUserService(mockDB)

	user, err := service.Signup("a@b.com", "secret1", "Alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secret1"))
	assert.NotEmpty(t, user.CreatedAt)
}

func TestSignupDuplicateEmail(t *testing.T) {
	mockDB := NewMockUserDB()
	service := users.NewUserService(mockDB)

	_, err := service.Signup("a@b.com", "secret1", "Alice")
	require.NoError(t, err)

	_, err = service.Signup("a@b.com", "secret2", "Other")
	assert.ErrorIs(t, err, db.ErrEmailExists)
	assert.Len(t, mockDB.users, 1)
}

func TestLogin(t *testing.T) {
	mockDB := NewMockUserDB()
	service := users.NewUserService(mockDB)

	created, err := service.Signup("a@b.com", "secret1", "Alice")
	require.NoError(t, err)

	user, err := service.Login("a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	mockDB := NewMockUserDB()
	service := users.NewUserService(mockDB)

	_, err := service.Signup("a@b.com", "secret1", "Alice")
	require.NoError(t, err)

	_, err = service.Login("a@b.com", "wrong")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	mockDB := NewMockUserDB()
	service := users.NewUserService(mockDB)

	_, err := service.Login("missing@b.com", "secret1")
	// Same signal as a wrong password
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestLoginStoreFailurePropagates(t *testing.T) {
	mockDB := NewMockUserDB()
	mockDB.shouldFailOn = "GetUserByEmail"
	mockDB.errorToReturn = errors.New("store unavailable")
	service := users.NewUserService(mockDB)

	_, err := service.Login("a@b.com", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	mockDB := NewMockUserDB()
	service := users.NewUserService(mockDB)

	created, err := service.Signup("a@b.com", "secret1", "Alice")
	require.NoError(t, err)

	newPassword := "newsecret"
	updated, err := service.UpdateUser(created.ID, models.UserUpdate{Password: &newPassword})
	require.NoError(t, err)
	assert.NotEqual(t, "newsecret", updated.Password)
	assert.True(t, auth.CheckPassword(updated.Password, "newsecret"))
}

func TestSignupSetsCreationTimestamp(t *testing.T) {
	mockDB := NewMockUserDB()
	service := users.NewUserService(mockDB)

	before := time.Now().UTC().Add(-time.Second)
	user, err := service.Signup("a@b.com", "secret1", "")
	require.NoError(t, err)

	created, err := time.Parse(time.RFC3339, user.CreatedAt)
	require.NoError(t, err)
	assert.True(t, created.After(before))
}
