// Package app builds the service graph from configuration. Both the HTTP
// server and the operator CLI start from here.
package app

import (
	"context"
	"fmt"
	"time"

	"feedback-dashboard/internal/analytics"
	"feedback-dashboard/internal/composer"
	"feedback-dashboard/internal/config"
	"feedback-dashboard/internal/database"
	"feedback-dashboard/internal/notify"
	"feedback-dashboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

type App struct {
	Config  *config.Config
	Store   repository.Store
	Service *analytics.Service

	closers []func(ctx context.Context) error
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Store: store}
	a.closers = append(a.closers, store.Close)

	notifier, err := a.openNotifier(cfg)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	if cfg.CohereAPIKey == "" {
		log.Warn("⚠️  COHERE_API_KEY not set, AI features will use fallback responses")
	}
	llm := composer.NewCohereClient(cfg.CohereAPIKey, cfg.CohereModel, cfg.CohereBaseURL, cfg.CohereTimeout)

	a.Service = analytics.NewService(store, composer.New(llm, cfg.ResortName), notifier, analytics.Options{
		Location:           loc,
		AlertDropThreshold: cfg.AlertDropThreshold,
		LowRatingAlert:     cfg.LowRatingAlert,
	})
	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		store := repository.NewMongoStore(db)

		ictx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := store.EnsureIndexes(ictx); err != nil {
			log.WithError(err).Warn("⚠️  Failed to create feedback indexes")
		}
		return store, nil

	case config.StoreFirestore:
		client, err := database.ConnectFirestore(ctx, cfg.FirestoreProjectID, cfg.GoogleCredentials)
		if err != nil {
			return nil, fmt.Errorf("connect to Firestore: %w", err)
		}
		return repository.NewFirestoreStore(client), nil

	default:
		log.Warn("⚠️  Using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), nil
	}
}

func (a *App) openNotifier(cfg *config.Config) (notify.Notifier, error) {
	switch cfg.Notifier {
	case config.NotifierEmail:
		return notify.NewEmailNotifier(cfg.ResendAPIKey, cfg.FromEmail, cfg.AlertEmails), nil
	case config.NotifierRedis:
		n, err := notify.NewRedisNotifierWithURL(cfg.RedisURL, cfg.AlertStream)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return n.Close() })
		return n, nil
	default:
		return notify.NewLogNotifier(), nil
	}
}

// Close releases every client in reverse order of creation.
func (a *App) Close(ctx context.Context) error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
