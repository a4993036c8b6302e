package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TheaterService interface {
	GetTheaters(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TheaterResponse], error)
	GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterResponse, error)

	// Admin
	CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error)
	UpdateTheater(ctx context.Context, theaterID string, req *request.UpdateTheaterRequest) (*response.TheaterResponse, error)
	DeleteTheater(ctx context.Context, theaterID string) error
}

type theaterService struct {
	theaters repository.TheaterRepository
	log      *zap.Logger
}

func NewTheaterService(theaters repository.TheaterRepository, log *zap.Logger) TheaterService {
	return &theaterService{
		theaters: theaters,
		log:      log.With(zap.String("service", "theater")),
	}
}

func (s *theaterService) GetTheaters(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TheaterResponse], error) {
	theaters, err := s.theaters.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.theaters.Count(ctx)
	if err != nil {
		return nil, err
	}

	theaterResponses := make([]response.TheaterResponse, len(theaters))
	for i, theater := range theaters {
		theaterResponses[i] = response.TheaterToResponse(theater)
	}

	return response.NewPaginatedResponse(theaterResponses, req.Page, req.PerPage, total), nil
}

func (s *theaterService) GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("theater ID %s: %w", theaterID, entity.ErrInvalidID)
	}

	theater, err := s.theaters.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", theaterID, entity.ErrTheaterNotFound)
	}

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error) {
	now := time.Now()
	theater := &entity.Theater{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Capacity: req.Capacity,
		Type:     req.Type,
	}

	if err := s.theaters.Create(ctx, theater); err != nil {
		return nil, err
	}

	s.log.Info("Theater created",
		zap.String("theater_id", theater.ID.String()),
		zap.String("name", theater.Name))

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) UpdateTheater(ctx context.Context, theaterID string, req *request.UpdateTheaterRequest) (*response.TheaterResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("theater ID %s: %w", theaterID, entity.ErrInvalidID)
	}

	theater, err := s.theaters.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", theaterID, entity.ErrTheaterNotFound)
	}

	if req.Name != nil {
		theater.Name = *req.Name
	}
	if req.Capacity != nil {
		theater.Capacity = *req.Capacity
	}
	if req.Type != nil {
		theater.Type = *req.Type
	}
	theater.UpdatedAt = time.Now()

	if err := s.theaters.Update(ctx, theater); err != nil {
		return nil, err
	}

	s.log.Info("Theater updated", zap.String("theater_id", theaterID))

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) DeleteTheater(ctx context.Context, theaterID string) error {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return fmt.Errorf("theater ID %s: %w", theaterID, entity.ErrInvalidID)
	}

	return s.theaters.Delete(ctx, id)
}
