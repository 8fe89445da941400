package services

import (
	"context"
	"time"

	"cryptofolio/src/models"
	"cryptofolio/src/repositories"
	"cryptofolio/src/utils"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceI interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// AuthService issues JWTs carrying the stable user id that scopes every
// ledger operation.
type AuthService struct {
	userRepository repositories.UserRepository
	tokenAuth      *jwtauth.JWTAuth
	tokenTTL       time.Duration
}

func NewAuthService(userRepository repositories.UserRepository, tokenAuth *jwtauth.JWTAuth, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepository: userRepository,
		tokenAuth:      tokenAuth,
		tokenTTL:       tokenTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", utils.BadRequest("username, email and password are required")
	}

	existing, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", utils.Conflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepository.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", utils.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", utils.Unauthorized("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	_, token, err := s.tokenAuth.Encode(map[string]interface{}{
		"user_id": user.ID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})
	return token, err
}
