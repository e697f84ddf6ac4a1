package dto

type MovieResponse struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview,omitempty"`
	PosterPath  string  `json:"poster_path,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	GenreIds    []int   `json:"genre_ids"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

type MovieDetailsResponse struct {
	MovieResponse
	// UserRating is the caller's own rating, absent when they never rated it.
	UserRating *float64 `json:"user_rating,omitempty"`
}

type RateMovieRequest struct {
	// Rating 0 removes a previous rating.
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
}

// SessionMoviesResponse is one page of a session's candidate list.
// NextPageKey is absent on the last page.
type SessionMoviesResponse struct {
	Movies      []*MovieResponse `json:"movies"`
	NextPageKey *int             `json:"next_page_key,omitempty"`
}

type PersonalRecommendationResponse struct {
	MovieIds []string `json:"movie_ids"`
}
