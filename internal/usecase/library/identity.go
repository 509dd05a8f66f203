package library

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenBytes = 32

var _ IdentityUseCase = (*identityImpl)(nil)

type IdentityConfig struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int
}

type identityImpl struct {
	logger          *zap.Logger
	userRepository  UserRepository
	tokenRepository TokenRepository
	transactor      Transactor
	cfg             IdentityConfig
	now             func() time.Time
}

func NewIdentity(
	logger *zap.Logger,
	userRepository UserRepository,
	tokenRepository TokenRepository,
	transactor Transactor,
	cfg IdentityConfig,
) *identityImpl {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &identityImpl{
		logger:          logger,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		transactor:      transactor,
		cfg:             cfg,
		now:             time.Now,
	}
}

// Register creates a member account. Librarians are only created through CreateUser.
func (i *identityImpl) Register(ctx context.Context, username, email, password string) (entity.User, error) {
	return i.createUser(ctx, username, email, password, entity.RoleMember, log.Register)
}

func (i *identityImpl) CreateUser(ctx context.Context, username, email, password string, role entity.Role) (entity.User, error) {
	if _, err := entity.ParseRole(string(role)); err != nil {
		return entity.User{}, err
	}
	return i.createUser(ctx, username, email, password, role, log.CreateUser)
}

func (i *identityImpl) createUser(ctx context.Context, username, email, password string, role entity.Role, action log.Action) (entity.User, error) {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	if err := validateCredentials(username, email, password); err != nil {
		return entity.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), i.cfg.BcryptCost)
	if log.ErrorIdentity(i.logger, err, "Failed hash password", traceID, username, action) {
		return entity.User{}, err
	}

	user, err := i.userRepository.CreateUser(ctx, entity.User{
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	})
	if log.ErrorIdentity(i.logger, err, "Failed create user", traceID, username, action) {
		return entity.User{}, err
	}

	log.InfoIdentity(i.logger, "Created the user", traceID, username, action)
	return user, nil
}

func (i *identityImpl) IssueToken(ctx context.Context, username, password string) (entity.TokenPair, error) {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	user, err := i.userRepository.GetUserByUsername(ctx, username)
	if errors.Is(err, entity.ErrNotFound) {
		log.ErrorIdentity(i.logger, err, "Unknown username", traceID, username, log.IssueToken)
		return entity.TokenPair{}, fmt.Errorf("%w: invalid credentials", entity.ErrUnauthenticated)
	}
	if err != nil {
		return entity.TokenPair{}, err
	}

	if err = bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.ErrorIdentity(i.logger, err, "Password mismatch", traceID, username, log.IssueToken)
		return entity.TokenPair{}, fmt.Errorf("%w: invalid credentials", entity.ErrUnauthenticated)
	}

	var pair entity.TokenPair
	err = i.transactor.WithTx(ctx, func(ctx context.Context) error {
		var txErr error
		pair, txErr = i.issuePair(ctx, user.ID)
		return txErr
	})
	if log.ErrorIdentity(i.logger, err, "Failed issue token", traceID, username, log.IssueToken) {
		return entity.TokenPair{}, err
	}

	log.InfoIdentity(i.logger, "Issued token pair", traceID, username, log.IssueToken)
	return pair, nil
}

// RefreshToken exchanges a refresh token for a new pair and revokes it.
// Only one of several concurrent refreshes with the same token succeeds.
func (i *identityImpl) RefreshToken(ctx context.Context, refresh string) (entity.TokenPair, error) {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()
	hash := hashToken(refresh)

	var pair entity.TokenPair
	err := i.transactor.WithTx(ctx, func(ctx context.Context) error {
		now := i.now()

		token, txErr := i.tokenRepository.GetToken(ctx, hash)
		if txErr != nil {
			return txErr
		}
		if token.Kind != entity.TokenRefresh || !token.Active(now) {
			return entity.ErrUnauthenticated
		}

		if txErr = i.tokenRepository.RevokeToken(ctx, hash, now); txErr != nil {
			return txErr
		}

		pair, txErr = i.issuePair(ctx, token.UserID)
		return txErr
	})

	if errors.Is(err, entity.ErrNotFound) {
		err = fmt.Errorf("%w: invalid refresh token", entity.ErrUnauthenticated)
	}
	if log.ErrorIdentity(i.logger, err, "Failed refresh token", traceID, "", log.RefreshToken) {
		return entity.TokenPair{}, err
	}

	return pair, nil
}

func (i *identityImpl) Authenticate(ctx context.Context, access string) (entity.Principal, error) {
	principal, err := i.authenticate(ctx, access)
	if err == nil {
		return principal, nil
	}

	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()
	if errors.Is(err, entity.ErrUnauthenticated) {
		log.WarnIdentity(i.logger, err, "Rejected access token", traceID, log.Authenticate)
	} else {
		log.ErrorIdentity(i.logger, err, "Failed authenticate", traceID, "", log.Authenticate)
	}
	return entity.Principal{}, err
}

func (i *identityImpl) authenticate(ctx context.Context, access string) (entity.Principal, error) {
	if access == "" {
		return entity.Principal{}, entity.ErrUnauthenticated
	}

	token, err := i.tokenRepository.GetToken(ctx, hashToken(access))
	if errors.Is(err, entity.ErrNotFound) {
		return entity.Principal{}, fmt.Errorf("%w: invalid access token", entity.ErrUnauthenticated)
	}
	if err != nil {
		return entity.Principal{}, err
	}
	if token.Kind != entity.TokenAccess || !token.Active(i.now()) {
		return entity.Principal{}, fmt.Errorf("%w: access token expired or revoked", entity.ErrUnauthenticated)
	}

	user, err := i.userRepository.GetUser(ctx, token.UserID)
	if errors.Is(err, entity.ErrNotFound) {
		return entity.Principal{}, fmt.Errorf("%w: user no longer exists", entity.ErrUnauthenticated)
	}
	if err != nil {
		return entity.Principal{}, err
	}

	return entity.Principal{UserID: user.ID, Role: user.Role}, nil
}

func (i *identityImpl) issuePair(ctx context.Context, userID string) (entity.TokenPair, error) {
	now := i.now()

	access, err := i.issue(ctx, userID, entity.TokenAccess, now.Add(i.cfg.AccessTokenTTL))
	if err != nil {
		return entity.TokenPair{}, err
	}

	refresh, err := i.issue(ctx, userID, entity.TokenRefresh, now.Add(i.cfg.RefreshTokenTTL))
	if err != nil {
		return entity.TokenPair{}, err
	}

	return entity.TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *identityImpl) issue(ctx context.Context, userID string, kind entity.TokenKind, expiresAt time.Time) (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	plain := base64.RawURLEncoding.EncodeToString(raw)

	err := i.tokenRepository.SaveToken(ctx, entity.Token{
		Hash:      hashToken(plain),
		UserID:    userID,
		Kind:      kind,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return "", err
	}

	return plain, nil
}

func hashToken(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return sum[:]
}
