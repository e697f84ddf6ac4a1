package service

import (
	"context"
	"time"

	"moviematch-be/internal/config"
	"moviematch-be/internal/dto"
	"moviematch-be/internal/entity"
	"moviematch-be/internal/repository/contract"
	"moviematch-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IMovieService interface {
	// Starter returns a random sample shown during onboarding.
	Starter(ctx context.Context) ([]*dto.MovieResponse, error)
	// Browse pages through the catalog by popularity, optionally narrowed
	// to genres. Pages are 1-based.
	Browse(ctx context.Context, genreIds []int, page int) ([]*dto.MovieResponse, error)
	Details(ctx context.Context, userId uuid.UUID, movieId string) (*dto.MovieDetailsResponse, error)
	Search(ctx context.Context, title string) ([]*dto.MovieResponse, error)
	// Rate upserts the caller's rating; rating 0 removes it.
	Rate(ctx context.Context, userId uuid.UUID, movieId string, rating float64) error
	// SessionMovies resolves one page of a session's candidate list into
	// full movie records.
	SessionMovies(ctx context.Context, sessionId, userId uuid.UUID, pageKey int) (*dto.SessionMoviesResponse, error)
}

type movieService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   contract.SessionRepository
	cfg        config.SessionConfig
}

func NewMovieService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.SessionRepository,
	cfg config.SessionConfig,
) IMovieService {
	return &movieService{
		uowFactory: uowFactory,
		sessions:   sessions,
		cfg:        cfg,
	}
}

func (s *movieService) Starter(ctx context.Context) ([]*dto.MovieResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	movies, err := uow.MovieRepository().Sample(ctx, s.cfg.MoviesPageSize)
	if err != nil {
		return nil, err
	}
	return toMovieResponses(movies), nil
}

func (s *movieService) Browse(ctx context.Context, genreIds []int, page int) ([]*dto.MovieResponse, error) {
	if page < 1 {
		page = 1
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	size := s.cfg.MoviesPageSize
	movies, err := uow.MovieRepository().FindPage(ctx, genreIds, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	return toMovieResponses(movies), nil
}

func (s *movieService) Details(ctx context.Context, userId uuid.UUID, movieId string) (*dto.MovieDetailsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	movie, err := uow.MovieRepository().FindByID(ctx, movieId)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}

	res := &dto.MovieDetailsResponse{MovieResponse: *toMovieResponse(movie)}

	rating, err := uow.RatingRepository().GetRating(ctx, userId, movieId)
	if err != nil {
		return nil, err
	}
	if rating != nil {
		res.UserRating = &rating.Rating
	}
	return res, nil
}

func (s *movieService) Search(ctx context.Context, title string) ([]*dto.MovieResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	movies, err := uow.MovieRepository().Search(ctx, title, s.cfg.PersonalListCap)
	if err != nil {
		return nil, err
	}
	return toMovieResponses(movies), nil
}

func (s *movieService) Rate(ctx context.Context, userId uuid.UUID, movieId string, rating float64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	movie, err := uow.MovieRepository().FindByID(ctx, movieId)
	if err != nil {
		return err
	}
	if movie == nil {
		return ErrNotFound
	}

	if rating == 0 {
		return uow.RatingRepository().Delete(ctx, userId, movieId)
	}

	now := time.Now()
	return uow.RatingRepository().Upsert(ctx, &entity.Rating{
		UserId:    userId,
		MovieId:   movieId,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *movieService) SessionMovies(ctx context.Context, sessionId, userId uuid.UUID, pageKey int) (*dto.SessionMoviesResponse, error) {
	session, err := s.sessions.FindByID(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.HasParticipant(userId) {
		return nil, ErrNotFound
	}
	if pageKey < 0 {
		pageKey = 0
	}

	size := s.cfg.SessionPageSize
	start := pageKey * size
	if start >= len(session.Candidates) {
		return &dto.SessionMoviesResponse{Movies: []*dto.MovieResponse{}}, nil
	}
	end := start + size
	if end > len(session.Candidates) {
		end = len(session.Candidates)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	movies, err := uow.MovieRepository().FindByIDs(ctx, session.Candidates[start:end])
	if err != nil {
		return nil, err
	}

	res := &dto.SessionMoviesResponse{Movies: toMovieResponses(movies)}
	if end < len(session.Candidates) {
		next := pageKey + 1
		res.NextPageKey = &next
	}
	return res, nil
}

func toMovieResponse(m *entity.Movie) *dto.MovieResponse {
	return &dto.MovieResponse{
		Id:          m.Id,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		GenreIds:    m.GenreIds,
		Popularity:  m.Popularity,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
	}
}

func toMovieResponses(movies []*entity.Movie) []*dto.MovieResponse {
	result := make([]*dto.MovieResponse, 0, len(movies))
	for _, m := range movies {
		result = append(result, toMovieResponse(m))
	}
	return result
}
