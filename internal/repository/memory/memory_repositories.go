package memory

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"moviematch-be/internal/entity"
	"moviematch-be/internal/repository/contract"

	"github.com/google/uuid"
)

// In-memory implementations of the repository contracts. They back the unit
// tests and double as a storage mode for local development without Postgres.

type MovieRepository struct {
	mu     sync.RWMutex
	movies map[string]*entity.Movie
	order  []string
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{movies: make(map[string]*entity.Movie)}
}

func (r *MovieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.movies[movie.Id]; !exists {
		r.order = append(r.order, movie.Id)
	}
	clone := *movie
	r.movies[movie.Id] = &clone
	return nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	movie, ok := r.movies[id]
	if !ok {
		return nil, nil
	}
	clone := *movie
	return &clone, nil
}

func (r *MovieRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	movies := make([]*entity.Movie, 0, len(ids))
	for _, id := range ids {
		if movie, ok := r.movies[id]; ok {
			clone := *movie
			movies = append(movies, &clone)
		}
	}
	return movies, nil
}

// QueryByFilter walks the catalog in insertion order, which makes the paired
// strategy's stable tie-break deterministic in tests.
func (r *MovieRepository) QueryByFilter(ctx context.Context, genreIds []int, excludeIds []string) ([]*entity.Movie, error) {
	all, _ := r.all(ctx)
	excluded := make(map[string]struct{}, len(excludeIds))
	for _, id := range excludeIds {
		excluded[id] = struct{}{}
	}
	filtered := make([]*entity.Movie, 0, len(all))
	for _, m := range all {
		if _, skip := excluded[m.Id]; skip {
			continue
		}
		if len(genreIds) > 0 && !m.HasAnyGenre(genreIds) {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered, nil
}

func (r *MovieRepository) FindPage(ctx context.Context, genreIds []int, limit, offset int) ([]*entity.Movie, error) {
	movies, err := r.QueryByFilter(ctx, genreIds, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(movies, func(i, j int) bool { return movies[i].Popularity > movies[j].Popularity })
	if offset >= len(movies) {
		return []*entity.Movie{}, nil
	}
	movies = movies[offset:]
	if len(movies) > limit {
		movies = movies[:limit]
	}
	return movies, nil
}

func (r *MovieRepository) all(ctx context.Context) ([]*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	movies := make([]*entity.Movie, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.movies[id]
		movies = append(movies, &clone)
	}
	return movies, nil
}

func (r *MovieRepository) Sample(ctx context.Context, n int) ([]*entity.Movie, error) {
	all, _ := r.all(ctx)
	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (r *MovieRepository) Search(ctx context.Context, title string, limit int) ([]*entity.Movie, error) {
	all, _ := r.all(ctx)
	var hits []*entity.Movie
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Title), strings.ToLower(title)) {
			hits = append(hits, m)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Popularity > hits[j].Popularity })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.movies)), nil
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	clone := *user
	r.users[user.Id] = &clone
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.Id] = &clone
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []*entity.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			clone := *user
			users = append(users, &clone)
		}
	}
	return users, nil
}

func (r *UserRepository) SetInitialized(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.Initialized = true
	}
	return nil
}

func (r *UserRepository) SetDeviceToken(ctx context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.DeviceToken = &token
	}
	return nil
}

type pairKey struct {
	user, friend uuid.UUID
}

type FriendshipRepository struct {
	mu        sync.RWMutex
	relations map[pairKey]entity.RelationState
}

func NewFriendshipRepository() *FriendshipRepository {
	return &FriendshipRepository{relations: make(map[pairKey]entity.RelationState)}
}

func (r *FriendshipRepository) GetRelation(ctx context.Context, userId, friendId uuid.UUID) (entity.RelationState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.relations[pairKey{userId, friendId}], nil
}

func (r *FriendshipRepository) ListRelations(ctx context.Context, userId uuid.UUID) ([]*entity.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var relations []*entity.Friendship
	for key, state := range r.relations {
		if key.user == userId {
			relations = append(relations, &entity.Friendship{
				UserId:   key.user,
				FriendId: key.friend,
				State:    state,
			})
		}
	}
	return relations, nil
}

func (r *FriendshipRepository) SetPairStates(ctx context.Context, userId, friendId uuid.UUID, userSide, friendSide entity.RelationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.relations[pairKey{userId, friendId}] = userSide
	r.relations[pairKey{friendId, userId}] = friendSide
	return nil
}

func (r *FriendshipRepository) DeletePair(ctx context.Context, userId, friendId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.relations, pairKey{userId, friendId})
	delete(r.relations, pairKey{friendId, userId})
	return nil
}

type ratingKey struct {
	user  uuid.UUID
	movie string
}

type RatingRepository struct {
	mu      sync.RWMutex
	ratings map[ratingKey]float64
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{ratings: make(map[ratingKey]float64)}
}

func (r *RatingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ratings[ratingKey{rating.UserId, rating.MovieId}] = rating.Rating
	return nil
}

func (r *RatingRepository) BulkInsert(ctx context.Context, ratings []*entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rating := range ratings {
		r.ratings[ratingKey{rating.UserId, rating.MovieId}] = rating.Rating
	}
	return nil
}

func (r *RatingRepository) Delete(ctx context.Context, userId uuid.UUID, movieId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ratings, ratingKey{userId, movieId})
	return nil
}

func (r *RatingRepository) GetRatedMovieIDs(ctx context.Context, userId uuid.UUID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := []string{}
	for key := range r.ratings {
		if key.user == userId {
			ids = append(ids, key.movie)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *RatingRepository) GetRating(ctx context.Context, userId uuid.UUID, movieId string) (*entity.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.ratings[ratingKey{userId, movieId}]
	if !ok {
		return nil, nil
	}
	return &entity.Rating{UserId: userId, MovieId: movieId, Rating: value}, nil
}

// SessionRepository is the in-memory counterpart of the Postgres session
// store, including the version compare-and-swap.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entity.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	r.sessions[session.Id] = cloneSession(session)
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(session), nil
}

func (r *SessionRepository) FindByParticipants(ctx context.Context, userA, userB uuid.UUID) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, session := range r.sessions {
		if session.HasParticipant(userA) && session.HasParticipant(userB) {
			return cloneSession(session), nil
		}
	}
	return nil, nil
}

func (r *SessionRepository) Update(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.sessions[session.Id]
	if !ok || stored.Version != session.Version {
		return contract.ErrVersionConflict
	}
	session.Version++
	r.sessions[session.Id] = cloneSession(session)
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

type MatchRepository struct {
	mu      sync.RWMutex
	records []*entity.MatchRecord
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{}
}

func (r *MatchRepository) Create(ctx context.Context, record *entity.MatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	clone := *record
	clone.MovieIds = append([]string(nil), record.MovieIds...)
	r.records = append(r.records, &clone)
	return nil
}

func (r *MatchRepository) FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.MatchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []*entity.MatchRecord
	for _, record := range r.records {
		if record.UserA == userId || record.UserB == userId {
			clone := *record
			clone.MovieIds = append([]string(nil), record.MovieIds...)
			records = append(records, &clone)
		}
	}
	return records, nil
}
