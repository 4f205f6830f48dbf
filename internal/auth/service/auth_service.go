package service

import (
	"context"
	"errors"
	"time"

	"github.com/AlibekovAA/ricebook/backend/internal/common/clock"
	"github.com/AlibekovAA/ricebook/backend/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/ricebook/backend/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/common/validation"
	"github.com/AlibekovAA/ricebook/backend/internal/session"
	userdomain "github.com/AlibekovAA/ricebook/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/ricebook/backend/internal/user/repository"
)

type AuthService struct {
	repo           userrepo.Repository
	sessions       session.Store
	hasher         commoncrypto.PasswordHasher
	idGenerator    commoncrypto.IDGenerator
	tokenGenerator commoncrypto.IDGenerator
	clock          clock.Clock
	sessionTTL     time.Duration
	log            *logger.Logger
}

type AuthServiceDeps struct {
	Repo           userrepo.Repository
	Sessions       session.Store
	Hasher         commoncrypto.PasswordHasher
	IDGenerator    commoncrypto.IDGenerator
	TokenGenerator commoncrypto.IDGenerator
	Clock          clock.Clock
	Log            *logger.Logger
}

type AuthServiceConfig struct {
	SessionTTL time.Duration
}

func NewAuthService(deps AuthServiceDeps, cfg AuthServiceConfig) *AuthService {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = constants.DefaultSessionTTL
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	tokenGenerator := deps.TokenGenerator
	if tokenGenerator == nil {
		tokenGenerator = commoncrypto.NewTokenGenerator()
	}
	return &AuthService{
		repo:           deps.Repo,
		sessions:       deps.Sessions,
		hasher:         deps.Hasher,
		idGenerator:    deps.IDGenerator,
		tokenGenerator: tokenGenerator,
		clock:          clk,
		sessionTTL:     sessionTTL,
		log:            deps.Log,
	}
}

type SessionToken struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.PublicUser, error) {
	input.normalize()

	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validateRegister(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return userdomain.PublicUser{}, err
	}

	dob, err := validation.ParseDate(input.Dob)
	if err != nil {
		return userdomain.PublicUser{}, commonerrors.Validation("dob must be a date in YYYY-MM-DD format")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return userdomain.PublicUser{}, commonerrors.Internal(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return userdomain.PublicUser{}, commonerrors.Internal(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		Dob:          dob,
		Zipcode:      input.Zipcode,
		Phone:        input.Phone,
		Avatar:       input.Avatar,
		Headline:     input.Headline,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrUserAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_user_exists",
			}).Warn("register failed: already exists")
			return userdomain.PublicUser{}, commonerrors.ErrUserAlreadyExists
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.PublicUser{}, commonerrors.Internal(err)
	}

	incrementUsersRegistered()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")

	return user.Public(), nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (SessionToken, error) {
	input.normalize()
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	if err := validateLogin(input); err != nil {
		incrementLoginAttempts("invalid")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		return SessionToken{}, err
	}

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			incrementLoginAttempts("failure")
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: not found")
			return SessionToken{}, commonerrors.ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return SessionToken{}, commonerrors.Internal(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		incrementLoginAttempts("failure")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		return SessionToken{}, commonerrors.ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, user.Username)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "login_session_issue_failed",
		}).Errorf("login failed: session issue error: %v", err)
		return SessionToken{}, commonerrors.Internal(err)
	}

	incrementLoginAttempts("success")
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return token, nil
}

func (s *AuthService) issueSession(ctx context.Context, username string) (SessionToken, error) {
	id, err := s.tokenGenerator.NewID()
	if err != nil {
		return SessionToken{}, err
	}

	now := s.clock.Now()
	sess := session.Session{
		ID:        id,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return SessionToken{}, err
	}

	incrementSessionsIssued()
	return SessionToken{ID: sess.ID, Username: username, ExpiresAt: sess.ExpiresAt}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return commonerrors.ErrUnauthenticated
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"action": "logout_session_not_found",
			}).Warn("logout failed: no session")
			return commonerrors.ErrUnauthenticated
		}
		s.log.WithFields(ctx, logger.Fields{
			"action": "logout_delete_failed",
		}).Errorf("logout failed: %v", err)
		return commonerrors.Internal(err)
	}

	incrementSessionsRevoked()
	s.log.WithFields(ctx, logger.Fields{
		"action": "logout_success",
	}).Info("logout success")

	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, username string, input ChangePasswordInput) error {
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "change_password_attempt",
	}).Info("change password attempt")

	if err := validateChangePassword(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "change_password_validation_failed",
		}).Warnf("change password validation failed: %v", err)
		return err
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return commonerrors.ErrUserNotFound
		}
		return commonerrors.Internal(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.OldPassword); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "change_password_invalid_password",
		}).Warn("change password failed: invalid old password")
		return commonerrors.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return commonerrors.Internal(err)
	}

	if err := s.repo.UpdatePassword(ctx, username, hash); err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return commonerrors.ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "change_password_update_failed",
		}).Errorf("change password failed: %v", err)
		return commonerrors.Internal(err)
	}

	incrementPasswordChanges()
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "change_password_success",
	}).Info("change password success")

	return nil
}

// Authenticate resolves a session id to its username. It only reads: an
// expired session or one whose user is gone is left for the cleanup loop.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		incrementSessionValidations(false)
		return "", commonerrors.ErrUnauthenticated
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		incrementSessionValidations(false)
		if errors.Is(err, session.ErrSessionNotFound) {
			return "", commonerrors.ErrUnauthenticated
		}
		s.log.WithFields(ctx, logger.Fields{
			"action": "authenticate_lookup_failed",
		}).Errorf("authenticate failed: %v", err)
		return "", commonerrors.Internal(err)
	}

	if _, err := s.repo.FindByUsername(ctx, sess.Username); err != nil {
		incrementSessionValidations(false)
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": sess.Username,
				"action":   "authenticate_dangling_session",
			}).Warn("authenticate failed: session user no longer exists")
			return "", commonerrors.ErrUnauthenticated
		}
		return "", commonerrors.Internal(err)
	}

	incrementSessionValidations(true)
	return sess.Username, nil
}
