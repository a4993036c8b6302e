package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type MovieResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Synopsis       string    `json:"synopsis"`
	Director       string    `json:"director"`
	Genres         []string  `json:"genres"`
	Duration       int       `json:"duration"`
	Classification string    `json:"classification"`
	Poster         *string   `json:"poster,omitempty"`
	ReleaseDate    string    `json:"release_date"`
	CreatedAt      time.Time `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:             movie.ID.String(),
		Title:          movie.Title,
		Synopsis:       movie.Synopsis,
		Director:       movie.Director,
		Genres:         movie.Genres,
		Duration:       movie.Duration,
		Classification: movie.Classification,
		Poster:         movie.Poster,
		ReleaseDate:    movie.ReleaseDate.Format("2006-01-02"),
		CreatedAt:      movie.CreatedAt,
	}
}
