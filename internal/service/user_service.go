package service

import (
	"context"
	"time"

	"moviematch-be/internal/dto"
	"moviematch-be/internal/entity"
	"moviematch-be/internal/pkg/logger"
	"moviematch-be/internal/pkg/serverutils"
	"moviematch-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	// Register creates the user and hands back the access token.
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.RegisterUserResponse, error)
	// Initialize stores the onboarding ratings and flips the initialized flag.
	Initialize(ctx context.Context, userId uuid.UUID, req *dto.InitializeUserRequest) error
	SetDeviceToken(ctx context.Context, userId uuid.UUID, token string) error
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  string
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, jwtSecret string, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
		logger:     log,
	}
}

func (s *userService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.RegisterUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	user := &entity.User{
		Id:       uuid.New(),
		Username: req.Username,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := serverutils.GenerateToken(user.Id, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UserService", "User registered", map[string]interface{}{"user_id": user.Id})
	return &dto.RegisterUserResponse{
		Id:       user.Id,
		Username: user.Username,
		Token:    token,
	}, nil
}

func (s *userService) Initialize(ctx context.Context, userId uuid.UUID, req *dto.InitializeUserRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByID(ctx, userId)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	now := time.Now()
	ratings := make([]*entity.Rating, 0, len(req.Ratings))
	for _, r := range req.Ratings {
		ratings = append(ratings, &entity.Rating{
			UserId:    userId,
			MovieId:   r.MovieId,
			Rating:    r.Rating,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := uow.RatingRepository().BulkInsert(ctx, ratings); err != nil {
		return err
	}
	return uow.UserRepository().SetInitialized(ctx, userId)
}

func (s *userService) SetDeviceToken(ctx context.Context, userId uuid.UUID, token string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByID(ctx, userId)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return uow.UserRepository().SetDeviceToken(ctx, userId, token)
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByID(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return &dto.UserProfileResponse{
		Id:          user.Id,
		Username:    user.Username,
		Initialized: user.Initialized,
	}, nil
}
