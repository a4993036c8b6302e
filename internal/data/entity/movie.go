package entity

import "time"

type Movie struct {
	Base
	Title          string    `db:"title"`
	Synopsis       string    `db:"synopsis"`
	Director       string    `db:"director"`
	Genres         []string  `db:"genres"`
	Duration       int       `db:"duration"` // minutes
	Classification string    `db:"classification"`
	Poster         *string   `db:"poster"`
	ReleaseDate    time.Time `db:"release_date"`
}
