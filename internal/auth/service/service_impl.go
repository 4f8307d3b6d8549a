package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	authdomain "github.com/stagelink/stagelink/internal/auth/domain"
	"github.com/stagelink/stagelink/internal/auth/password"
	"github.com/stagelink/stagelink/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Cfg   config.Config
	Repo  authdomain.Repository
}

type service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       authdomain.Repository
	sessionTTL time.Duration
}

func NewService(p Params) authdomain.Service {
	ttl := time.Duration(p.Cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &service{
		db:         p.DB,
		log:        p.Log.Named("auth.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		sessionTTL: ttl,
	}
}

func (s *service) CreateUser(ctx context.Context, req authdomain.CreateUserRequest) (*authdomain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, authdomain.ErrInvalidCredentials
	}
	switch req.AccountType {
	case authdomain.AccountTypeVenue, authdomain.AccountTypePerformer:
	default:
		return nil, authdomain.ErrInvalidCredentials
	}

	existing, err := s.repo.FindUserByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrUserExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &authdomain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: &hash,
		AccountType:  req.AccountType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.InsertUser(ctx, s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.FindUserByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, authdomain.ErrInvalidCredentials
	}
	if !password.Verify(req.Password, *user.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}

	rawToken := uuid.NewString() + uuid.NewString()
	now := time.Now().UTC()
	session := &authdomain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        req.UserAgent,
		IPAddress:        req.IPAddress,
		ExpiresAt:        now.Add(s.sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.repo.InsertSession(ctx, s.db, session); err != nil {
		return nil, err
	}

	return &authdomain.LoginResult{
		User:      user,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}, nil
}

func (s *service) Logout(ctx context.Context, rawToken string) error {
	session, err := s.repo.FindSessionByTokenHash(ctx, s.db, hashToken(rawToken))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.repo.RevokeSession(ctx, s.db, session.ID, time.Now().UTC())
}

func (s *service) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, authdomain.ErrInvalidSession
	}
	session, err := s.repo.FindSessionByTokenHash(ctx, s.db, hashToken(rawToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, authdomain.ErrSessionNotFound
	}
	now := time.Now().UTC()
	if session.RevokedAt != nil {
		return nil, authdomain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, authdomain.ErrSessionExpired
	}
	if err := s.repo.TouchSession(ctx, s.db, session.ID, now); err != nil {
		s.log.Warn("failed to touch session", zap.Error(err))
	}
	return session, nil
}

func (s *service) UserByID(ctx context.Context, id snowflake.ID) (*authdomain.User, error) {
	user, err := s.repo.FindUserByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}
	return user, nil
}

func hashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
