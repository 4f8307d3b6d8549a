package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	performerdomain "github.com/stagelink/stagelink/internal/performer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  performerdomain.Repository
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  performerdomain.Repository
}

func NewService(p Params) performerdomain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("performer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req performerdomain.CreatePerformerRequest) (*performerdomain.Performer, error) {
	stageName := strings.TrimSpace(req.StageName)
	if stageName == "" {
		return nil, performerdomain.ErrInvalidStageName
	}

	slugVal, err := s.uniqueSlug(ctx, stageName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	performer := &performerdomain.Performer{
		ID:          s.genID.Generate(),
		UserID:      req.UserID,
		StageName:   stageName,
		Slug:        slugVal,
		Genre:       strings.TrimSpace(req.Genre),
		Bio:         req.Bio,
		City:        strings.TrimSpace(req.City),
		RatePerHour: req.RatePerHour,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, performer); err != nil {
		return nil, err
	}
	return performer, nil
}

func (s *service) Update(ctx context.Context, userID snowflake.ID, req performerdomain.UpdatePerformerRequest) (*performerdomain.Performer, error) {
	performer, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if performer == nil {
		return nil, performerdomain.ErrNotFound
	}

	if req.StageName != nil {
		stageName := strings.TrimSpace(*req.StageName)
		if stageName == "" {
			return nil, performerdomain.ErrInvalidStageName
		}
		if stageName != performer.StageName {
			slugVal, err := s.uniqueSlug(ctx, stageName)
			if err != nil {
				return nil, err
			}
			performer.StageName = stageName
			performer.Slug = slugVal
		}
	}
	if req.Genre != nil {
		performer.Genre = strings.TrimSpace(*req.Genre)
	}
	if req.Bio != nil {
		performer.Bio = *req.Bio
	}
	if req.City != nil {
		performer.City = strings.TrimSpace(*req.City)
	}
	if req.RatePerHour != nil {
		performer.RatePerHour = *req.RatePerHour
	}
	performer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, performer); err != nil {
		return nil, err
	}
	return performer, nil
}

func (s *service) ByUserID(ctx context.Context, userID snowflake.ID) (*performerdomain.Performer, error) {
	performer, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if performer == nil {
		return nil, performerdomain.ErrNotFound
	}
	return performer, nil
}

func (s *service) BySlug(ctx context.Context, slugVal string) (*performerdomain.Performer, error) {
	performer, err := s.repo.FindBySlug(ctx, s.db, slugVal)
	if err != nil {
		return nil, err
	}
	if performer == nil {
		return nil, performerdomain.ErrNotFound
	}
	return performer, nil
}

func (s *service) Search(ctx context.Context, filter performerdomain.SearchFilter) ([]performerdomain.Performer, error) {
	return s.repo.Search(ctx, s.db, filter)
}

func (s *service) uniqueSlug(ctx context.Context, stageName string) (string, error) {
	base := slug.Make(stageName)
	existing, err := s.repo.FindBySlug(ctx, s.db, base)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return base, nil
	}
	return fmt.Sprintf("%s-%s", base, s.genID.Generate()), nil
}
