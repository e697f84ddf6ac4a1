package bootstrap

import (
	"context"
	"log"

	"moviematch-be/internal/config"
	"moviematch-be/internal/controller"
	"moviematch-be/internal/handler"
	"moviematch-be/internal/pkg/logger"
	"moviematch-be/internal/repository/implementation"
	"moviematch-be/internal/repository/memory"
	"moviematch-be/internal/repository/unitofwork"
	"moviematch-be/internal/service"
	"moviematch-be/internal/websocket"
	"moviematch-be/pkg/oracle"

	pktNats "moviematch-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const matchHistoryTopic = "match_history"

type Container struct {
	// Controllers
	UserController    controller.IUserController
	MovieController   controller.IMovieController
	FriendController  controller.IFriendController
	SessionController controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Recommendation Oracle
	oracleProvider := oracle.NewHTTPProvider(
		cfg.Oracle.BaseURL,
		cfg.Oracle.RequestTimeout,
		cfg.Oracle.MaxRetries,
	)

	// Session storage with an in-memory read-through cache; sessions are
	// hot for their whole lifetime.
	sessionRepo := memory.NewSessionCache(
		implementation.NewSessionRepository(db),
		cfg.Session.CacheTTL,
		cfg.Session.CachePurgePeriod,
	)

	// 3. Services
	publisherService := service.NewPublisherService(matchHistoryTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, matchHistoryTopic, uowFactory)

	userService := service.NewUserService(uowFactory, cfg.App.JwtSecret, sysLogger)
	friendService := service.NewFriendService(uowFactory, natsPub, sysLogger)
	recommendationService := service.NewRecommendationService(uowFactory, oracleProvider, cfg.Session)
	movieService := service.NewMovieService(uowFactory, sessionRepo, cfg.Session)
	sessionService := service.NewSessionService(
		sessionRepo,
		uowFactory,
		recommendationService,
		friendService,
		natsPub,
		publisherService,
		sysLogger,
	)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifRepo, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		UserController:      controller.NewUserController(userService),
		MovieController:     controller.NewMovieController(movieService),
		FriendController:    controller.NewFriendController(friendService),
		SessionController:   controller.NewSessionController(sessionService, recommendationService),

		ConsumerService: consumerService,
	}
}
