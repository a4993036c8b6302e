package request

type CreateMovieRequest struct {
	Title          string   `json:"title" validate:"required,min=1,max=200"`
	Synopsis       string   `json:"synopsis" validate:"required"`
	Director       string   `json:"director" validate:"required"`
	Genres         []string `json:"genres" validate:"required,min=1,dive,required"`
	Duration       int      `json:"duration" validate:"required,min=1"`
	Classification string   `json:"classification" validate:"required"`
	Poster         *string  `json:"poster,omitempty"`
	ReleaseDate    string   `json:"release_date" validate:"required,datetime=2006-01-02"`
}

type UpdateMovieRequest struct {
	Title          *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Synopsis       *string  `json:"synopsis,omitempty"`
	Director       *string  `json:"director,omitempty"`
	Genres         []string `json:"genres,omitempty" validate:"omitempty,min=1,dive,required"`
	Duration       *int     `json:"duration,omitempty" validate:"omitempty,min=1"`
	Classification *string  `json:"classification,omitempty"`
	Poster         *string  `json:"poster,omitempty"`
	ReleaseDate    *string  `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
