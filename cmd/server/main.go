// @title           Civic Core API
// @version         1.0
// @description     Identity and reputation engine: passwordless ceremonies, vote ledger, moderation.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vozciudadana/civic-core/internal/api"
	"github.com/vozciudadana/civic-core/internal/api/handler"
	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
	"github.com/vozciudadana/civic-core/internal/core/service"
	mongorepo "github.com/vozciudadana/civic-core/internal/infrastructure/db/mongo"
	redisinfra "github.com/vozciudadana/civic-core/internal/infrastructure/db/redis"
	"github.com/vozciudadana/civic-core/internal/infrastructure/memory"
	"github.com/vozciudadana/civic-core/internal/infrastructure/queue"
	"github.com/vozciudadana/civic-core/internal/infrastructure/webauthn"
	"github.com/vozciudadana/civic-core/internal/pkg/config"
	"github.com/vozciudadana/civic-core/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "civic-core",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "civic-core",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// Background workers outlive the HTTP server so requests still draining
	// during shutdown can finish. They stop once the drain is over.
	workCtx, stopWork := context.WithCancel(context.WithoutCancel(ctx))
	defer stopWork()

	// --- Repositories ---
	identities := mongorepo.NewIdentityRepository(db)
	posts := mongorepo.NewPostRepository(db)
	comments := mongorepo.NewCommentRepository(db)
	votes := mongorepo.NewVoteRepository(db)
	audit := mongorepo.NewAuditRepository(db)

	challenges := challengeStore(workCtx, cfg, rdb)
	serializer := targetSerializer(workCtx, cfg, rdb, log)
	limiter := redisinfra.NewAttemptLimiter(rdb, "master-login", cfg.Master.MaxAttempts, cfg.Master.Window)

	verifier, err := webauthn.NewVerifier(webauthn.Config{
		RPID:          cfg.WebAuthn.RPID,
		RPDisplayName: cfg.WebAuthn.RPName,
		RPOrigins:     cfg.WebAuthn.Origins,
	})
	if err != nil {
		return err
	}

	// --- Services ---
	admins := domain.CanonicalNationalIDs(cfg.Master.AdminNationalIDs)
	reputation := service.NewReputationService(identities, logger.Component("reputation"))
	ceremonies := service.NewCeremonyService(identities, challenges, verifier, limiter, audit, service.CeremonyOptions{
		JWTSecret:        cfg.JWTSecret,
		TokenTTL:         cfg.TokenTTL,
		ChallengeTTL:     cfg.Challenge.TTL,
		Admins:           admins,
		MasterSecretHash: cfg.Master.SecretHash,
	}, logger.Component("ceremony"))

	router := api.NewRouter(api.Deps{
		Ceremonies: ceremonies,
		Identities: service.NewIdentityService(identities, audit, logger.Component("identity")),
		Votes:      service.NewVoteService(identities, votes, posts, comments, reputation, serializer, logger.Component("votes")),
		Content:    service.NewContentService(identities, posts, comments, logger.Component("content")),
		Moderation: service.NewModerationService(posts, reputation, audit, serializer, logger.Component("moderation")),
		Health: map[string]handler.Pinger{
			"mongo": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}

	log.Info().
		Str("port", cfg.Port).
		Str("challenge_backend", cfg.Challenge.Backend).
		Str("serializer", cfg.Serializer.Kind).
		Int("admins", len(admins)).
		Bool("master_login", cfg.Master.SecretHash != "").
		Msg("http server listening")

	return serve(ctx, ln, srv, stopWork, log)
}

// serve runs srv on ln until ctx is cancelled, then drains in-flight
// requests. afterDrain runs once Shutdown has returned.
func serve(ctx context.Context, ln net.Listener, srv *http.Server, afterDrain func(), log zerolog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		defer afterDrain()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down http server")
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

func challengeStore(ctx context.Context, cfg *config.Config, rdb *redis.Client) ports.ChallengeStore {
	if cfg.Challenge.Backend == config.BackendMemory {
		store := memory.NewChallengeStore()
		go store.Run(ctx, time.Minute)
		return store
	}
	return redisinfra.NewChallengeStore(rdb)
}

func targetSerializer(ctx context.Context, cfg *config.Config, rdb *redis.Client, log zerolog.Logger) ports.Serializer {
	if cfg.Serializer.Kind == config.SerializerRedis {
		return redisinfra.NewTargetLock(rdb, cfg.Serializer.LockTTL, 2*cfg.Serializer.LockTTL, log)
	}
	d := queue.NewDispatcher(cfg.Serializer.Workers, log)
	d.Start(ctx)
	return d
}
