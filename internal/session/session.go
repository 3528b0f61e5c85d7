// Package session authenticates users against the users table and issues
// RS256 signed session tokens. Signed-out tokens are remembered by a
// Revoker until they expire.
package session

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"pen/internal/access"
	"pen/internal/config"
	"pen/pkg/domain"
	"pen/pkg/logger"
	"pen/pkg/serrors"
	"pen/pkg/storage"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTTL = 24 * time.Hour
	// MinPasswordLength is enforced when creating users.
	MinPasswordLength = 8
)

var errBadCredentials = serrors.With(serrors.ErrUnauthorized, "Email ou mot de passe incorrect")

// Options configure token signing and password hashing.
type Options struct {
	// PrivateKey signs tokens. It may be empty for a verify-only store, in
	// which case SignIn and Issue fail.
	PrivateKey string
	PublicKey  string
	Issuer     string
	TTL        time.Duration
	BcryptCost int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		PrivateKey: cfg.Auth.PrivateKey,
		PublicKey:  cfg.Auth.PublicKey,
		Issuer:     cfg.Auth.Issuer,
		TTL:        cfg.Auth.SessionTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}
}

// Claims are the session token claims.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type store struct {
	options     Options
	signKey     *rsa.PrivateKey
	verifyKey   *rsa.PublicKey
	users       storage.UserStorage
	revocations Revoker
	access      access.Controller
	validate    *validator.Validate
	now         func() time.Time
}

func (s *store) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errBadCredentials
	}

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not look up user")
	}
	if user == nil {
		return nil, errBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Warn(ctx, "could not compare password hash", zap.Error(err))
		}

		return nil, errBadCredentials
	}

	return s.Issue(*user)
}

func (s *store) Issue(user domain.User) (*Session, error) {
	if s.signKey == nil {
		return nil, serrors.With(serrors.ErrInternal, "session signing key is not configured")
	}

	now := s.now()
	expiresAt := now.Add(s.options.TTL)
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    s.options.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.signKey)
	if err != nil {
		return nil, fmt.Errorf("could not sign session token: %w", err)
	}

	identity := domain.AuthenticatedIdentity(user.ID, user.Email)

	return &Session{
		Token:     signed,
		ExpiresAt: expiresAt.UTC(),
		Identity:  identity,
		Landing:   s.access.LandingPath(identity),
	}, nil
}

func (s *store) SignOut(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		logger.Debug(ctx, "ignoring sign out with unusable token", zap.Error(err))

		return nil
	}

	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not sign out")
	}

	return nil
}

func (s *store) Resolve(ctx context.Context, token string) domain.Identity {
	if token == "" {
		return domain.AnonymousIdentity()
	}

	claims, err := s.parse(token)
	if err != nil {
		logger.Debug(ctx, "rejected session token", zap.Error(err))

		return domain.AnonymousIdentity()
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		logger.Debug(ctx, "session token has an invalid subject", zap.String("subject", claims.Subject))

		return domain.AnonymousIdentity()
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.Warn(ctx, "could not check session revocation", zap.Error(err))

		return domain.PendingIdentity()
	}
	if revoked {
		return domain.AnonymousIdentity()
	}

	return domain.AuthenticatedIdentity(domain.UserID(id), claims.Email)
}

func (s *store) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid email %q", email)
	}
	if len(password) < MinPasswordLength {
		return nil, serrors.With(serrors.ErrBadRequest, "password must be at least %d characters", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.options.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user, err := s.users.StoreUser(ctx, domain.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, serrors.Wrap(serrors.ErrConflict, err, "email %q is already registered", email)
		}

		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return user, nil
}

// parse verifies signature, algorithm, issuer and expiry, and requires a
// token id so the token can be revoked.
func (s *store) parse(token string) (*Claims, error) {
	var claims Claims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.options.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.options.Issuer))
	}

	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.verifyKey, nil
	}, opts...); err != nil {
		return nil, fmt.Errorf("could not parse token: %w", err)
	}
	if claims.ID == "" {
		return nil, errors.New("token has no id")
	}

	return &claims, nil
}

// New creates a Store. users and revocations must not be nil.
func New(options Options,
	users storage.UserStorage,
	revocations Revoker,
	controller access.Controller) (Store, error) {
	if options.PublicKey == "" {
		return nil, errors.New("session public key is required")
	}
	verifyKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(options.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	var signKey *rsa.PrivateKey
	if options.PrivateKey != "" {
		signKey, err = jwt.ParseRSAPrivateKeyFromPEM([]byte(options.PrivateKey))
		if err != nil {
			return nil, fmt.Errorf("could not parse RSA private key: %w", err)
		}
	}

	if options.TTL <= 0 {
		options.TTL = defaultTTL
	}
	if options.BcryptCost == 0 {
		options.BcryptCost = bcrypt.DefaultCost
	}

	return &store{
		options:     options,
		signKey:     signKey,
		verifyKey:   verifyKey,
		users:       users,
		revocations: revocations,
		access:      controller,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		now:         time.Now,
	}, nil
}
