package entity

import "time"

// Movie is a read-only catalog record. The id is the MovieLens id, which is
// what the rating data and the recommendation oracle are keyed by.
type Movie struct {
	Id          string
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	GenreIds    []int
	Popularity  float64
	VoteAverage float64
	VoteCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasAnyGenre reports whether the movie carries at least one of the given genre ids.
func (m *Movie) HasAnyGenre(genreIds []int) bool {
	for _, want := range genreIds {
		for _, got := range m.GenreIds {
			if got == want {
				return true
			}
		}
	}
	return false
}
