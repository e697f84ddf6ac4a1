package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"moviematch-be/internal/config"
	"moviematch-be/internal/entity"
	"moviematch-be/internal/repository/unitofwork"
	"moviematch-be/pkg/oracle"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// personal-affinity component weights
const (
	weightGenreOverlap = 0.40
	weightAvgRating    = 0.22
	weightRatingCount  = 0.18
	weightPopularity   = 0.20
)

// predictWorkers bounds the number of concurrent oracle calls per request.
const predictWorkers = 8

type IRecommendationService interface {
	// PairedCandidates ranks the catalog for a pair by averaged predicted
	// ratings, excluding movies either user already rated. The optional
	// genre filter narrows the pool before scoring.
	PairedCandidates(ctx context.Context, userA, userB uuid.UUID, genreIds []int) ([]string, error)
	// SimilarityCandidates returns the oracle's neighbor list for a seed
	// movie, already ranked.
	SimilarityCandidates(ctx context.Context, seedMovieId string) ([]string, error)
	// PersonalRecommendations ranks unrated movies for a single user by a
	// composite of genre overlap, average rating, rating count and
	// popularity. Stateless, no session involved.
	PersonalRecommendations(ctx context.Context, userId uuid.UUID) ([]string, error)
}

type recommendationService struct {
	uowFactory unitofwork.RepositoryFactory
	oracle     oracle.Provider
	cfg        config.SessionConfig
}

func NewRecommendationService(
	uowFactory unitofwork.RepositoryFactory,
	oracleProvider oracle.Provider,
	cfg config.SessionConfig,
) IRecommendationService {
	return &recommendationService{
		uowFactory: uowFactory,
		oracle:     oracleProvider,
		cfg:        cfg,
	}
}

func (s *recommendationService) PairedCandidates(ctx context.Context, userA, userB uuid.UUID, genreIds []int) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ratedA, err := uow.RatingRepository().GetRatedMovieIDs(ctx, userA)
	if err != nil {
		return nil, err
	}
	ratedB, err := uow.RatingRepository().GetRatedMovieIDs(ctx, userB)
	if err != nil {
		return nil, err
	}

	pool, err := uow.MovieRepository().QueryByFilter(ctx, genreIds, unionIds(ratedA, ratedB))
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return []string{}, nil
	}

	// The two predictions per movie are independent, so they all go through
	// one bounded worker group.
	scores := make([]float64, len(pool))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(predictWorkers)
	for i, movie := range pool {
		i, movieId := i, movie.Id
		g.Go(func() error {
			scoreA, err := s.oracle.Predict(gctx, userA, movieId)
			if err != nil {
				return err
			}
			scoreB, err := s.oracle.Predict(gctx, userB, movieId)
			if err != nil {
				return err
			}
			scores[i] = (scoreA + scoreB) / 2
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, oracle.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
		}
		return nil, err
	}

	// Stable sort keeps catalog order among equal scores.
	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	limit := s.cfg.PairedListCap
	if len(order) < limit {
		limit = len(order)
	}
	candidates := make([]string, 0, limit)
	for _, idx := range order[:limit] {
		candidates = append(candidates, pool[idx].Id)
	}
	return candidates, nil
}

func (s *recommendationService) SimilarityCandidates(ctx context.Context, seedMovieId string) ([]string, error) {
	neighbors, err := s.oracle.Neighbors(ctx, seedMovieId, s.cfg.SimilarityK)
	if err != nil {
		if errors.Is(err, oracle.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
		}
		return nil, err
	}
	if len(neighbors) > s.cfg.SimilarityK {
		neighbors = neighbors[:s.cfg.SimilarityK]
	}
	return neighbors, nil
}

func (s *recommendationService) PersonalRecommendations(ctx context.Context, userId uuid.UUID) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rated, err := uow.RatingRepository().GetRatedMovieIDs(ctx, userId)
	if err != nil {
		return nil, err
	}

	// The preference genre set is the union of genres across the user's
	// rating history.
	ratedMovies, err := uow.MovieRepository().FindByIDs(ctx, rated)
	if err != nil {
		return nil, err
	}
	prefGenres := map[int]bool{}
	for _, m := range ratedMovies {
		for _, g := range m.GenreIds {
			prefGenres[g] = true
		}
	}

	pool, err := uow.MovieRepository().QueryByFilter(ctx, nil, rated)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return []string{}, nil
	}

	var maxOverlap, maxAvg, maxCount, maxPop float64
	overlaps := make([]float64, len(pool))
	for i, m := range pool {
		overlaps[i] = genreOverlap(m, prefGenres)
		maxOverlap = max(maxOverlap, overlaps[i])
		maxAvg = max(maxAvg, m.VoteAverage)
		maxCount = max(maxCount, float64(m.VoteCount))
		maxPop = max(maxPop, m.Popularity)
	}

	scores := make([]float64, len(pool))
	for i, m := range pool {
		scores[i] = weightGenreOverlap*ratio(overlaps[i], maxOverlap) +
			weightAvgRating*ratio(m.VoteAverage, maxAvg) +
			weightRatingCount*ratio(float64(m.VoteCount), maxCount) +
			weightPopularity*ratio(m.Popularity, maxPop)
	}

	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	limit := s.cfg.PersonalListCap
	if len(order) < limit {
		limit = len(order)
	}
	result := make([]string, 0, limit)
	for _, idx := range order[:limit] {
		result = append(result, pool[idx].Id)
	}
	return result, nil
}

func genreOverlap(m *entity.Movie, prefGenres map[int]bool) float64 {
	count := 0
	for _, g := range m.GenreIds {
		if prefGenres[g] {
			count++
		}
	}
	return float64(count)
}

// ratio divides value by max, defining the zero-max case as zero.
func ratio(value, max float64) float64 {
	if max == 0 {
		return 0
	}
	return value / max
}

func unionIds(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	union := make([]string, 0, len(a)+len(b))
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	return union
}
