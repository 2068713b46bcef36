package user

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/badoux/checkmail"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength = 35
	minEmailLength = 3
	bcryptCost     = 12

	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	maxPasswordLength = 72

	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var (
	ErrInvalidEmail       = fmt.Errorf("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address is too long or too short, max length: %d, min length: %d", maxEmailLength, minEmailLength)
	ErrPasswordLength     = fmt.Errorf("password must be between %d and %d characters", minPasswordLength, maxPasswordLength)
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInternalError      = errors.New("internal Server Error")
	ErrInvalidOldPassword = errors.New("invalid old password")
	ErrInvalidRole        = errors.New("invalid user role")
)

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	HashToken        string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CategorySeeder creates the predefined expense categories for a fresh
// account. Implemented by the finance category service.
type CategorySeeder interface {
	SeedPredefined(userID string) error
}

type Service interface {
	Register(email, password string) (*User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	ChangePasswordWithOldPassword(userID, oldPassword, newPassword string) error
	ListUsers() ([]User, error)
	CreateUser(email, password, role string) (*User, error)
	UpdateUser(userID, email, role string) (*User, error)
	DeleteUser(userID string) error
}

type service struct {
	repo           Repository
	categorySeeder CategorySeeder
}

func NewUserService(repo Repository, categorySeeder CategorySeeder) Service {
	return &service{
		repo:           repo,
		categorySeeder: categorySeeder,
	}
}

func hashPassword(password string) (string, error) {
	var passwordBytes = []byte(password)

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword(passwordBytes, bcryptCost)

	return string(hashedPasswordBytes), err
}

func generateHashToken() (string, error) {
	token := make([]byte, 32)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("could not generate hash token: %v", err)
	}
	return hex.EncodeToString(token), nil
}

func validateEmailAddress(email string) error {
	err := checkmail.ValidateFormat(email)
	if err != nil {
		log.Debugf("email format check failed for %q: %v", email, err)
		return ErrInvalidEmail
	}

	// The MX lookup is advisory, a DNS hiccup must not block signups.
	if err := checkmail.ValidateHost(email); err != nil {
		log.Debugf("email host check failed for %q, continuing: %v", email, err)
	}
	if len(email) > maxEmailLength || len(email) <= minEmailLength {
		return ErrEmailLength
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrPasswordLength
	}
	return nil
}

func validateRole(role string) error {
	if role != RoleUser && role != RoleAdmin {
		return ErrInvalidRole
	}
	return nil
}

func (s *service) Register(email, password string) (*User, error) {
	return s.createUserWithRole(email, password, RoleUser)
}

// CreateUser is the admin variant of Register, it additionally accepts a role.
func (s *service) CreateUser(email, password, role string) (*User, error) {
	if err := validateRole(role); err != nil {
		return nil, err
	}
	return s.createUserWithRole(email, password, role)
}

func (s *service) createUserWithRole(email, password, role string) (*User, error) {
	err := validateEmailAddress(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existingUser, err := s.repo.getUserByEmail(email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		log.Errorf("error checking email existence: %v", err)
		return nil, ErrInternalError
	}
	if existingUser != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		log.Errorf("error during hashing the password: %v", err)
		return nil, ErrInternalError
	}

	hashToken, err := generateHashToken()
	if err != nil {
		log.Errorf("error during generating a hashToken: %v", err)
		return nil, ErrInternalError
	}

	user := &User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		HashToken:    hashToken,
	}

	err = s.repo.createUser(user)
	if err != nil {
		log.Errorf("error during creating the user: %v", err)
		return nil, ErrInternalError
	}

	if err := s.categorySeeder.SeedPredefined(user.ID); err != nil {
		// The account is usable without the starter categories, so log and
		// carry on rather than failing the whole registration.
		log.Errorf("could not seed categories for new user %s: %v", user.ID, err)
	}

	return user, nil
}

func (s *service) ChangePasswordWithOldPassword(userID, oldPassword, newPassword string) error {
	user, err := s.repo.getUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	if !doPasswordsMatch(user.PasswordHash, oldPassword) {
		return ErrInvalidOldPassword
	}

	return s.changePassword(userID, newPassword)
}

func (s *service) changePassword(userID, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	newPasswordHash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("could not hash password: %v", err)
	}

	newHashToken, err := generateHashToken()
	if err != nil {
		return fmt.Errorf("could not generate hash token: %v", err)
	}

	err = s.repo.updateUserPasswordAndHashToken(userID, newPasswordHash, newHashToken)
	if err != nil {
		return fmt.Errorf("could not update user password: %v", err)
	}

	return nil
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hashedPassword), []byte(currPassword))
	return err == nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByEmail(email string) (*User, error) {
	return s.repo.getUserByEmail(email)
}

func (s *service) ListUsers() ([]User, error) {
	users, err := s.repo.listUsers()
	if err != nil {
		log.Errorf("error listing users: %v", err)
		return nil, ErrInternalError
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (s *service) UpdateUser(userID, email, role string) (*User, error) {
	if err := validateRole(role); err != nil {
		return nil, err
	}
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}

	user, err := s.repo.getUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternalError
	}

	if email != user.Email {
		existing, err := s.repo.getUserByEmail(email)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, ErrInternalError
		}
		if existing != nil {
			return nil, ErrEmailAlreadyExists
		}
	}

	user.Email = email
	user.Role = role
	if err := s.repo.updateUser(user); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		log.Errorf("error updating user %s: %v", userID, err)
		return nil, ErrInternalError
	}
	return user, nil
}

func (s *service) DeleteUser(userID string) error {
	err := s.repo.deleteUser(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		log.Errorf("error deleting user %s: %v", userID, err)
		return ErrInternalError
	}
	return nil
}
