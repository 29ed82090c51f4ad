package app

import (
	"context"
	"log/slog"

	httpapp "wedding_site/internal/app/http"
	"wedding_site/internal/config"
	"wedding_site/internal/lib/logger/sl"
	"wedding_site/internal/lib/mailer"
	"wedding_site/internal/repository"
	emailservice "wedding_site/internal/services/email_service"
	galleryservice "wedding_site/internal/services/gallery_service"
	guestservice "wedding_site/internal/services/guest_service"
	pageservice "wedding_site/internal/services/page_service"
	rsvpservice "wedding_site/internal/services/rsvp_service"
	siteservice "wedding_site/internal/services/site_service"
	"wedding_site/internal/storage"
	filestorage "wedding_site/internal/storage/filestorage"
	"wedding_site/internal/storage/memkv"
	"wedding_site/internal/storage/postgresql"
	redisapp "wedding_site/internal/storage/redis"
	httprouters "wedding_site/internal/transport/http"
)

const (
	kvRedis  = "redis"
	kvMemory = "memory"
)

type App struct {
	HTTPServer *httpapp.Server
	log        *slog.Logger
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) *App {
	pg, err := postgresql.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		panic(err)
	}
	if err := pg.Migrate(ctx); err != nil {
		panic(err)
	}

	var (
		kv    storage.KV
		redis *redisapp.Client
	)
	switch cfg.KV.Driver {
	case kvRedis:
		redis = redisapp.NewClient(cfg.KV.RedisAddr, cfg.KV.RedisPassword, cfg.KV.RedisDB)
		if err := redis.HealthCheck(ctx); err != nil {
			panic(err)
		}
		kv = redis
	case kvMemory:
		log.Warn("using in-memory key-value store, content is lost on restart")
		kv = memkv.New()
	default:
		panic("unknown kv driver: " + cfg.KV.Driver)
	}

	blobs, err := filestorage.NewLocalFileStorage(cfg.BlobStorage.BaseDir, cfg.BlobStorage.BaseURL, cfg.BlobStorage.MaxSize)
	if err != nil {
		panic(err)
	}

	repo := repository.NewRepository(pg.Pool())
	docs := repository.NewDocuments(kv)

	sender := newSender(log, cfg.Email)

	emailService := emailservice.NewEmailService(log, repo.Emails, repo.Guests, repo.Rsvps, sender, cfg.Email.AdminEmail)
	rsvpService := rsvpservice.NewRsvpService(log, repo.Guests, repo.Rsvps, emailService)
	guestService := guestservice.NewGuestService(log, repo.Guests)
	pageService := pageservice.NewPageService(log, docs.Pages)
	galleryService := galleryservice.NewGalleryService(log, docs.Gallery, docs.Order, docs.Site, blobs, cfg.BlobStorage.MaxSize)
	siteService := siteservice.NewSiteService(log, docs.Site, repo.Emails, docs.Pages, cfg.Cache.TTL)

	routers := httprouters.NewRouter(
		log,
		rsvpService,
		guestService,
		pageService,
		galleryService,
		siteService,
		emailService,
		blobs,
	)

	server := httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, cfg.Auth, cfg.BlobStorage.MaxSize, routers)

	return &App{
		HTTPServer: server,
		log:        log,
		storage:    pg,
		redis:      redis,
	}
}

// Stop closes the stores. The HTTP server is stopped separately.
func (a *App) Stop() {
	a.storage.Stop()
	if a.redis != nil {
		a.redis.Close()
	}
}

func newSender(log *slog.Logger, cfg config.EmailConfig) mailer.Sender {
	if !cfg.Enabled {
		log.Info("email delivery disabled, messages are only logged")
		return mailer.NewLogSender(log)
	}

	sender, err := mailer.NewResendSender(cfg.ResendAPIKey, cfg.FromEmail, cfg.FromName)
	if err != nil {
		log.Error("email delivery misconfigured, messages are only logged", sl.Err(err))
		return mailer.NewLogSender(log)
	}

	return sender
}
