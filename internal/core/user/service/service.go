package userapp

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"yatube/internal/core/actor"
	"yatube/internal/core/apperror"
	"yatube/internal/core/listing"
	userEntity "yatube/internal/core/user"
	userPort "yatube/internal/ports/user"
)

const tokenIssuer = "yatube"

// ErrInvalidToken is returned for tokens that are malformed, expired, signed
// with another key or that name an account which no longer exists.
var ErrInvalidToken = errors.New("invalid token")

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// RegisterUserInput is a signup request.
type RegisterUserInput struct {
	Username  string `json:"username" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
}

// LoginInput is a username and password pair exchanged for a token.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Claims is the JWT payload. Subject holds the user id.
type Claims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// UserService handles accounts and issues JWT access tokens.
type UserService struct {
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
	TokenTTL       time.Duration
	Now            func() time.Time
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Logger:         logger,
		TokenTTL:       24 * time.Hour,
		Now:            time.Now,
		jwtKey:         jwtKey,
	}
}

// RegisterUser creates an account. Usernames are unique.
func (s *UserService) RegisterUser(ctx context.Context, in RegisterUserInput) (*userPort.UserDTO, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}
	if !usernamePattern.MatchString(in.Username) {
		return nil, apperror.Invalid("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	u := &userEntity.User{
		ID:        uuid.Must(uuid.NewV4()),
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashed),
	}
	if err := s.UserRepository.Create(ctx, u); err != nil {
		return nil, err
	}

	s.Logger.Info("User registered", zap.String("user_id", u.ID.String()), zap.String("username", u.Username))
	return userPort.NewUserDTO(u), nil
}

// LoginUser checks the credentials and issues a signed token.
func (s *UserService) LoginUser(ctx context.Context, in LoginInput) (*userPort.LoginResponse, error) {
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}
	invalid := apperror.Invalid("non_field_errors", "Unable to log in with provided credentials.")

	u, err := s.UserRepository.FindByUsername(ctx, in.Username)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		s.Logger.Info("Login rejected", zap.String("username", in.Username))
		return nil, invalid
	}

	expiresAt := s.Now().Add(s.TokenTTL)
	token, err := s.generateJWT(u, expiresAt)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}
	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) generateJWT(u *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &Claims{
		Username: u.Username,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  s.Now().Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// ParseToken resolves a bearer token to the authenticated actor it was issued for.
func (s *UserService) ParseToken(ctx context.Context, raw string) (actor.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return actor.Anonymous(), errors.Wrapf(ErrInvalidToken, "%v", err)
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return actor.Anonymous(), errors.Wrap(ErrInvalidToken, "subject is not a user id")
	}
	u, err := s.UserRepository.FindByID(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return actor.Anonymous(), errors.Wrap(ErrInvalidToken, "unknown user")
	}
	if err != nil {
		return actor.Anonymous(), err
	}
	return actor.New(u.ID, u.Username), nil
}

// GetUser returns the public profile of username.
func (s *UserService) GetUser(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return userPort.NewUserDTO(u), nil
}

// ListUsers pages accounts by username, optionally filtered to an exact username.
func (s *UserService) ListUsers(ctx context.Context, username string, page int) (*listing.Page[*userPort.UserDTO], error) {
	users, err := s.UserRepository.List(ctx, username, listing.Default, page)
	if err != nil {
		return nil, err
	}
	return listing.MapPage(users, userPort.NewUserDTO), nil
}
