package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	venuedomain "github.com/stagelink/stagelink/internal/venue/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  venuedomain.Repository
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  venuedomain.Repository
}

func NewService(p Params) venuedomain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("venue.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req venuedomain.CreateVenueRequest) (*venuedomain.Venue, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, venuedomain.ErrInvalidName
	}

	slugVal, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	venue := &venuedomain.Venue{
		ID:           s.genID.Generate(),
		UserID:       req.UserID,
		Name:         name,
		Slug:         slugVal,
		City:         strings.TrimSpace(req.City),
		Address:      strings.TrimSpace(req.Address),
		Capacity:     req.Capacity,
		Description:  req.Description,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

func (s *service) Update(ctx context.Context, userID snowflake.ID, req venuedomain.UpdateVenueRequest) (*venuedomain.Venue, error) {
	venue, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, venuedomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, venuedomain.ErrInvalidName
		}
		if name != venue.Name {
			slugVal, err := s.uniqueSlug(ctx, name)
			if err != nil {
				return nil, err
			}
			venue.Name = name
			venue.Slug = slugVal
		}
	}
	if req.City != nil {
		venue.City = strings.TrimSpace(*req.City)
	}
	if req.Address != nil {
		venue.Address = strings.TrimSpace(*req.Address)
	}
	if req.Capacity != nil {
		venue.Capacity = *req.Capacity
	}
	if req.Description != nil {
		venue.Description = *req.Description
	}
	if req.ContactEmail != nil {
		venue.ContactEmail = strings.TrimSpace(*req.ContactEmail)
	}
	venue.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

func (s *service) ByUserID(ctx context.Context, userID snowflake.ID) (*venuedomain.Venue, error) {
	venue, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, venuedomain.ErrNotFound
	}
	return venue, nil
}

func (s *service) BySlug(ctx context.Context, slugVal string) (*venuedomain.Venue, error) {
	venue, err := s.repo.FindBySlug(ctx, s.db, slugVal)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, venuedomain.ErrNotFound
	}
	return venue, nil
}

// uniqueSlug derives a URL slug from the venue name, suffixing with the
// next snowflake when the base slug is taken.
func (s *service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	existing, err := s.repo.FindBySlug(ctx, s.db, base)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return base, nil
	}
	return fmt.Sprintf("%s-%s", base, s.genID.Generate()), nil
}
