package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type TheaterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func TheaterToResponse(theater *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:        theater.ID.String(),
		Name:      theater.Name,
		Capacity:  theater.Capacity,
		Type:      theater.Type,
		CreatedAt: theater.CreatedAt,
	}
}
