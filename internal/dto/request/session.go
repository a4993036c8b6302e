package request

type CreateSessionRequest struct {
	MovieID   string  `json:"movie_id" validate:"required,uuid4"`
	TheaterID string  `json:"theater_id" validate:"required,uuid4"`
	Datetime  string  `json:"datetime" validate:"required"`
	FullPrice float64 `json:"full_price" validate:"required,gt=0"`
	HalfPrice float64 `json:"half_price" validate:"required,gt=0"`

	// Optional seat layout. When omitted, rows of ten are derived from the
	// theater capacity.
	Rows        int `json:"rows,omitempty" validate:"omitempty,min=1,max=26"`
	SeatsPerRow int `json:"seats_per_row,omitempty" validate:"omitempty,min=1,max=50"`
}

type UpdateSessionRequest struct {
	MovieID   *string  `json:"movie_id,omitempty" validate:"omitempty,uuid4"`
	TheaterID *string  `json:"theater_id,omitempty" validate:"omitempty,uuid4"`
	Datetime  *string  `json:"datetime,omitempty"`
	FullPrice *float64 `json:"full_price,omitempty" validate:"omitempty,gt=0"`
	HalfPrice *float64 `json:"half_price,omitempty" validate:"omitempty,gt=0"`
}
