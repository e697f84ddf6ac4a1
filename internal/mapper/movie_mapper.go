package mapper

import (
	"encoding/json"

	"moviematch-be/internal/entity"
	"moviematch-be/internal/model"
)

type MovieMapper struct{}

func NewMovieMapper() *MovieMapper {
	return &MovieMapper{}
}

func (m *MovieMapper) ToEntity(mv *model.Movie) *entity.Movie {
	if mv == nil {
		return nil
	}
	var genres []int
	if len(mv.GenreIds) > 0 {
		// Corrupt genre payloads degrade to an empty set rather than failing reads.
		_ = json.Unmarshal(mv.GenreIds, &genres)
	}
	return &entity.Movie{
		Id:          mv.Id,
		Title:       mv.Title,
		Overview:    mv.Overview,
		PosterPath:  mv.PosterPath,
		ReleaseDate: mv.ReleaseDate,
		GenreIds:    genres,
		Popularity:  mv.Popularity,
		VoteAverage: mv.VoteAverage,
		VoteCount:   mv.VoteCount,
		CreatedAt:   mv.CreatedAt,
		UpdatedAt:   mv.UpdatedAt,
	}
}

func (m *MovieMapper) ToModel(mv *entity.Movie) *model.Movie {
	if mv == nil {
		return nil
	}
	genres, _ := json.Marshal(mv.GenreIds)
	return &model.Movie{
		Id:          mv.Id,
		Title:       mv.Title,
		Overview:    mv.Overview,
		PosterPath:  mv.PosterPath,
		ReleaseDate: mv.ReleaseDate,
		GenreIds:    genres,
		Popularity:  mv.Popularity,
		VoteAverage: mv.VoteAverage,
		VoteCount:   mv.VoteCount,
		CreatedAt:   mv.CreatedAt,
		UpdatedAt:   mv.UpdatedAt,
	}
}

func (m *MovieMapper) ToEntities(models []*model.Movie) []*entity.Movie {
	entities := make([]*entity.Movie, len(models))
	for i, mv := range models {
		entities[i] = m.ToEntity(mv)
	}
	return entities
}
