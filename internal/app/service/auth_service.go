package service

import (
	"errors"
	"strings"
	"time"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"github.com/autopartshop/autoparts-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingUserFields  = errors.New("all registration fields are required")
)

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	Address         string
	ShippingAddress string
	PhoneNumber     string
}

type UpdateProfileInput struct {
	FirstName       string
	LastName        string
	Address         string
	ShippingAddress string
	PhoneNumber     string
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	Login(email, password string) (*model.User, string, error)
	CreateAdmin(input RegisterInput) (*model.User, error)
	ListAdmins() ([]model.User, error)
	GetProfile(userID uint) (*model.User, error)
	UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// NormalizeEmail trims surrounding whitespace and lowercases; emails are
// stored and compared in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(input RegisterInput) (*model.User, error) {
	return s.createUser(input, false)
}

// CreateAdmin registers a user with the admin flag set. Caller is
// responsible for gating access.
func (s *authService) CreateAdmin(input RegisterInput) (*model.User, error) {
	return s.createUser(input, true)
}

func (s *authService) createUser(input RegisterInput, isAdmin bool) (*model.User, error) {
	email := NormalizeEmail(input.Email)

	logger.Info("Attempting user registration", map[string]interface{}{
		"email":    email,
		"is_admin": isAdmin,
	})

	if strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" ||
		email == "" ||
		input.Password == "" ||
		strings.TrimSpace(input.Address) == "" ||
		strings.TrimSpace(input.ShippingAddress) == "" ||
		strings.TrimSpace(input.PhoneNumber) == "" {
		logger.Warn("Registration failed: missing required fields", map[string]interface{}{
			"email": email,
		})
		return nil, ErrMissingUserFields
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	user := &model.User{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           email,
		PasswordHash:    hashed,
		Address:         input.Address,
		ShippingAddress: input.ShippingAddress,
		PhoneNumber:     input.PhoneNumber,
		IsAdmin:         isAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"email":    email,
		"is_admin": isAdmin,
	})
	return user, nil
}

// Login reports the same error for unknown email and wrong password.
func (s *authService) Login(email, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)

	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, "", ErrInvalidCredentials
		}
		logger.Error("Failed to fetch user for login", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email": email,
		})
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateToken(user.ID, user.Email, user.IsAdmin, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", err
	}

	logger.Info("Login successful", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return user, token, nil
}

func (s *authService) ListAdmins() ([]model.User, error) {
	return s.userRepo.FindAdmins()
}

func (s *authService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes contact fields only; email, password and the
// admin flag are untouched. Blank fields are left as they are.
func (s *authService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.ShippingAddress != "" {
		user.ShippingAddress = input.ShippingAddress
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User profile updated", map[string]interface{}{
		"user_id": userID,
	})
	return user, nil
}
