package user

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockUserRepository struct {
	users  []*User
	nextID int
}

func (m *mockUserRepository) createUser(user *User) error {
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users = append(m.users, &stored)
	return nil
}

func (m *mockUserRepository) getUserByEmail(email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) getUserByID(id string) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) listUsers() ([]User, error) {
	var users []User
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *mockUserRepository) updateUser(user *User) error {
	for _, u := range m.users {
		if u.ID == user.ID {
			u.Email = user.Email
			u.Role = user.Role
			return nil
		}
	}
	return ErrUserNotFound
}

func (m *mockUserRepository) deleteUser(id string) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return ErrUserNotFound
}

func (m *mockUserRepository) updateUserPasswordAndHashToken(userID, newPasswordHash, newHashToken string) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.PasswordHash = newPasswordHash
			u.HashToken = newHashToken
			return nil
		}
	}
	return ErrUserNotFound
}

type mockSeeder struct {
	seededFor []string
	err       error
}

func (m *mockSeeder) SeedPredefined(userID string) error {
	if m.err != nil {
		return m.err
	}
	m.seededFor = append(m.seededFor, userID)
	return nil
}

func TestRegister_CreatesUserAndSeedsCategories(t *testing.T) {
	repo := &mockUserRepository{}
	seeder := &mockSeeder{}
	service := NewUserService(repo, seeder)

	created, err := service.Register("jan@example.com", "s3cret-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, RoleUser, created.Role)
	assert.NotEmpty(t, created.HashToken)
	assert.NotEqual(t, "s3cret-password", created.PasswordHash)
	assert.Equal(t, []string{created.ID}, seeder.seededFor)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{}
	service := NewUserService(repo, &mockSeeder{})

	_, err := service.Register("jan@example.com", "s3cret-password")
	assert.NoError(t, err)

	_, err = service.Register("jan@example.com", "another-password")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_InvalidEmail(t *testing.T) {
	service := NewUserService(&mockUserRepository{}, &mockSeeder{})

	_, err := service.Register("not-an-email", "s3cret-password")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegister_PasswordLength(t *testing.T) {
	repo := &mockUserRepository{}
	service := NewUserService(repo, &mockSeeder{})

	_, err := service.Register("jan@example.com", "")
	assert.ErrorIs(t, err, ErrPasswordLength)

	_, err = service.Register("jan@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordLength)

	// bcrypt refuses input over 72 bytes, so it has to be caught up front.
	_, err = service.Register("jan@example.com", strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordLength)

	assert.Empty(t, repo.users)
}

func TestRegister_SeedingFailureDoesNotBlock(t *testing.T) {
	repo := &mockUserRepository{}
	seeder := &mockSeeder{err: errors.New("seed failed")}
	service := NewUserService(repo, seeder)

	created, err := service.Register("jan@example.com", "s3cret-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestCreateUser_ValidatesRole(t *testing.T) {
	repo := &mockUserRepository{}
	service := NewUserService(repo, &mockSeeder{})

	_, err := service.CreateUser("admin@example.com", "s3cret-password", "SUPERUSER")
	assert.ErrorIs(t, err, ErrInvalidRole)

	created, err := service.CreateUser("admin@example.com", "s3cret-password", RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, created.Role)
}

func TestChangePassword_RotatesHashToken(t *testing.T) {
	repo := &mockUserRepository{}
	service := NewUserService(repo, &mockSeeder{})

	created, err := service.Register("jan@example.com", "old-password")
	assert.NoError(t, err)
	oldHashToken := created.HashToken

	err = service.ChangePasswordWithOldPassword(created.ID, "wrong-password", "new-password")
	assert.ErrorIs(t, err, ErrInvalidOldPassword)

	err = service.ChangePasswordWithOldPassword(created.ID, "old-password", "tiny")
	assert.ErrorIs(t, err, ErrPasswordLength)

	err = service.ChangePasswordWithOldPassword(created.ID, "old-password", "new-password")
	assert.NoError(t, err)

	updated, err := service.GetUserByID(created.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, oldHashToken, updated.HashToken)
	assert.True(t, doPasswordsMatch(updated.PasswordHash, "new-password"))
}

func TestUpdateUser_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{}
	service := NewUserService(repo, &mockSeeder{})

	first, err := service.Register("jan@example.com", "s3cret-password")
	assert.NoError(t, err)
	_, err = service.Register("anna@example.com", "s3cret-password")
	assert.NoError(t, err)

	_, err = service.UpdateUser(first.ID, "anna@example.com", RoleUser)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	updated, err := service.UpdateUser(first.ID, "jan@example.com", RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, updated.Role)
}
