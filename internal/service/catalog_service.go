package service

import (
	"context"
	"fmt"
	"time"

	"daffodil-hmo/internal/core/cache"
	"daffodil-hmo/internal/domain"
)

// CatalogService serves the public read side: property listings (cached),
// team members and job postings.
type CatalogService struct {
	properties domain.PropertyRepository
	team       domain.TeamRepository
	jobs       domain.JobRepository
	cache      *cache.Cache
	cacheTTL   time.Duration
}

func NewCatalogService(
	properties domain.PropertyRepository,
	team domain.TeamRepository,
	jobs domain.JobRepository,
	c *cache.Cache,
	ttl time.Duration,
) *CatalogService {
	return &CatalogService{properties: properties, team: team, jobs: jobs, cache: c, cacheTTL: ttl}
}

type PropertyPage struct {
	Total int64             `json:"total"`
	Items []domain.Property `json:"items"`
}

// ListProperties returns a newest-first page, served through the Redis
// cache with singleflight so a cold key loads once. Pass a nil cache to
// read straight from the database.
func (s *CatalogService) ListProperties(ctx context.Context, offset, limit int) (*PropertyPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	load := func(context.Context) (*PropertyPage, error) {
		items, total, err := s.properties.List(offset, limit)
		if err != nil {
			return nil, err
		}
		return &PropertyPage{Total: total, Items: items}, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	key := fmt.Sprintf("catalog:properties:%d:%d", offset, limit)
	return cache.GetOrLoadJSON[PropertyPage](s.cache, ctx, key, s.cacheTTL, load)
}

func (s *CatalogService) GetProperty(id string) (*domain.Property, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := s.properties.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *CatalogService) ListTeam() ([]domain.TeamMember, error) { return s.team.List() }

func (s *CatalogService) ListJobs() ([]domain.Job, error) { return s.jobs.List() }

func (s *CatalogService) GetJob(id string) (*domain.Job, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	j, err := s.jobs.FindByID(id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	return j, nil
}
