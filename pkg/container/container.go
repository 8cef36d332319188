package container

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"bookrealm-backend/internal/config"
	bookhandler "bookrealm-backend/internal/domains/book/handler"
	bookrepo "bookrealm-backend/internal/domains/book/repository"
	bookservice "bookrealm-backend/internal/domains/book/service"
	categoryhandler "bookrealm-backend/internal/domains/category/handler"
	categoryrepo "bookrealm-backend/internal/domains/category/repository"
	categoryservice "bookrealm-backend/internal/domains/category/service"
	chapterhandler "bookrealm-backend/internal/domains/chapter/handler"
	chapterrepo "bookrealm-backend/internal/domains/chapter/repository"
	chapterservice "bookrealm-backend/internal/domains/chapter/service"
	favoritehandler "bookrealm-backend/internal/domains/favorite/handler"
	favoriterepo "bookrealm-backend/internal/domains/favorite/repository"
	favoriteservice "bookrealm-backend/internal/domains/favorite/service"
	historyhandler "bookrealm-backend/internal/domains/history/handler"
	historyrepo "bookrealm-backend/internal/domains/history/repository"
	historyservice "bookrealm-backend/internal/domains/history/service"
	interesthandler "bookrealm-backend/internal/domains/interest/handler"
	interestrepo "bookrealm-backend/internal/domains/interest/repository"
	interestservice "bookrealm-backend/internal/domains/interest/service"
	progresshandler "bookrealm-backend/internal/domains/progress/handler"
	progressrepo "bookrealm-backend/internal/domains/progress/repository"
	progressservice "bookrealm-backend/internal/domains/progress/service"
	"bookrealm-backend/internal/events"
	"bookrealm-backend/internal/infrastructure/cache"
	"bookrealm-backend/internal/infrastructure/database"
	"bookrealm-backend/internal/infrastructure/queue"
	"bookrealm-backend/internal/infrastructure/storage"
	pkgcache "bookrealm-backend/pkg/cache"
)

// Container wires infrastructure, repositories, services and handlers.
// Everything is constructed here, once, and injected; nothing reaches
// for globals.
type Container struct {
	Config *config.Config

	DB          *database.PostgresDB
	Cache       pkgcache.Cache
	Storage     storage.ImageStore
	QueueClient *asynq.Client
	Bus         *events.Bus

	BookRepository     bookrepo.RepositoryInterface
	ChapterRepository  chapterrepo.RepositoryInterface
	CategoryRepository categoryrepo.RepositoryInterface
	FavoriteRepository favoriterepo.RepositoryInterface
	HistoryRepository  historyrepo.RepositoryInterface
	InterestRepository interestrepo.RepositoryInterface
	ProgressRepository progressrepo.RepositoryInterface

	BookService     bookservice.ServiceInterface
	ChapterService  chapterservice.ServiceInterface
	CategoryService categoryservice.ServiceInterface
	FavoriteService favoriteservice.ServiceInterface
	HistoryService  historyservice.ServiceInterface
	InterestService interestservice.ServiceInterface
	ProgressService progressservice.ServiceInterface

	BookHandler     *bookhandler.BookHandler
	ChapterHandler  *chapterhandler.ChapterHandler
	CategoryHandler *categoryhandler.CategoryHandler
	FavoriteHandler *favoritehandler.FavoriteHandler
	HistoryHandler  *historyhandler.HistoryHandler
	InterestHandler *interesthandler.InterestHandler
	ProgressHandler *progresshandler.ProgressHandler
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// Infrastructure.
	c.DB = database.NewPostgresDB(cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	c.Cache = cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	minioStore, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	c.Storage = minioStore

	c.QueueClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.Bus = events.NewBus()

	// Repositories.
	pool := c.DB.Pool
	c.BookRepository = bookrepo.NewPostgresRepository(pool)
	c.ChapterRepository = chapterrepo.NewPostgresRepository(pool)
	c.CategoryRepository = categoryrepo.NewPostgresRepository(pool)
	c.FavoriteRepository = favoriterepo.NewPostgresRepository(pool)
	c.HistoryRepository = historyrepo.NewPostgresRepository(pool)
	c.InterestRepository = interestrepo.NewPostgresRepository(pool)
	c.ProgressRepository = progressrepo.NewPostgresRepository(pool)

	// Services.
	c.CategoryService = categoryservice.NewService(c.CategoryRepository, c.Storage)
	c.BookService = bookservice.NewService(
		c.BookRepository,
		c.ChapterRepository,
		c.CategoryService,
		c.FavoriteRepository,
		c.InterestRepository,
		c.Storage,
		c.Cache,
		c.Bus,
		c.QueueClient,
		cfg.Job.TrashRetentionDays,
	)
	c.ChapterService = chapterservice.NewService(c.ChapterRepository, c.BookRepository, c.Bus, c.Cache)
	c.FavoriteService = favoriteservice.NewService(c.FavoriteRepository, c.BookRepository, c.Bus)
	c.HistoryService = historyservice.NewService(c.HistoryRepository, c.BookRepository, cfg.Job.HistoryCap)
	c.InterestService = interestservice.NewService(c.InterestRepository, c.CategoryService)
	c.ProgressService = progressservice.NewService(c.ProgressRepository, c.BookRepository, c.ChapterRepository)

	// Event subscriptions, registered before anything can emit.
	favoriteservice.NewCountProjector(c.BookRepository).Register(c.Bus)
	historyservice.NewInvalidator(c.HistoryRepository).Register(c.Bus)

	// Handlers.
	c.BookHandler = bookhandler.NewBookHandler(c.BookService)
	c.ChapterHandler = chapterhandler.NewChapterHandler(c.ChapterService)
	c.CategoryHandler = categoryhandler.NewCategoryHandler(c.CategoryService)
	c.FavoriteHandler = favoritehandler.NewFavoriteHandler(c.FavoriteService)
	c.HistoryHandler = historyhandler.NewHistoryHandler(c.HistoryService)
	c.InterestHandler = interesthandler.NewInterestHandler(c.InterestService)
	c.ProgressHandler = progresshandler.NewProgressHandler(c.ProgressService)

	return c, nil
}

// Close releases external connections and drains in-flight event
// handlers. Drain first: handlers still need the pool.
func (c *Container) Close() {
	if c.Bus != nil {
		c.Bus.Drain()
	}
	if c.QueueClient != nil {
		c.QueueClient.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
