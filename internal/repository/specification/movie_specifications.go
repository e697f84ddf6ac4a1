package specification

import (
	"strconv"

	"gorm.io/gorm"
)

// ExcludeMovieIDs filters out movies whose id is in the given set. An empty
// set is a no-op so callers don't need to special-case users with no ratings.
type ExcludeMovieIDs struct {
	IDs []string
}

func (s ExcludeMovieIDs) Apply(db *gorm.DB) *gorm.DB {
	if len(s.IDs) == 0 {
		return db
	}
	return db.Where("id NOT IN ?", s.IDs)
}

// ByMovieIDs filters by a list of movie ids.
type ByMovieIDs struct {
	IDs []string
}

func (s ByMovieIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ?", s.IDs)
}

// HasAnyGenre matches movies whose jsonb genre array contains at least one of
// the given genre ids.
type HasAnyGenre struct {
	GenreIds []int
}

func (s HasAnyGenre) Apply(db *gorm.DB) *gorm.DB {
	if len(s.GenreIds) == 0 {
		return db
	}
	// jsonb containment per element, OR-ed together.
	query := db.Session(&gorm.Session{NewDB: true})
	for i, id := range s.GenreIds {
		containment := "[" + strconv.Itoa(id) + "]"
		if i == 0 {
			query = query.Where("genre_ids @> ?", containment)
		} else {
			query = query.Or("genre_ids @> ?", containment)
		}
	}
	return db.Where(query)
}

// TitleLike matches titles case-insensitively by substring.
type TitleLike struct {
	Title string
}

func (s TitleLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Title+"%")
}

// ByPopularity orders most popular first.
type ByPopularity struct{}

func (s ByPopularity) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("popularity DESC")
}
