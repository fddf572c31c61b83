package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	intconfig "wedding/internal/config"
	intdb "wedding/internal/db"
	router "wedding/internal/http"
	"wedding/internal/http/handlers"
	"wedding/internal/http/middleware"
	"wedding/internal/invitation"
	"wedding/internal/metrics"
	"wedding/internal/repositories"
	"wedding/internal/services"
	"wedding/internal/utils"
)

func main() {
	utils.SetupLogger("info", os.Getenv("GIN_MODE") != gin.ReleaseMode)

	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	utils.SetupLogger(env.LogLevel, env.GinMode != gin.ReleaseMode)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	event, err := intconfig.LoadEvent(env.EventFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", env.EventFile).Msg("failed to load event profile")
	}

	db, err := intconfig.ConnectDB(env.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer intconfig.CloseDB()

	if err := intdb.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auth := services.NewAuthService(repositories.UserRepository{DB: db}, env.JWTSecret, env.JWTTTL)
	if err := auth.EnsureAdmin(ctx, env.AdminEmail, env.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin account")
	}
	unsubscribe := auth.Subscribe(func(ev services.SessionEvent) {
		log.Info().Str("module", "auth").Str("action", string(ev.Kind)).
			Int64("user_id", ev.User.ID).Str("role", ev.User.Role).Msg("session changed")
	})
	defer unsubscribe()

	sessions := invitation.NewStore(env.SessionTTL)
	sessions.StartSweeper(ctx, time.Minute, func(n int) {
		metrics.InvitationSessions.Set(float64(sessions.Len()))
		log.Debug().Int("expired", n).Msg("invitation sessions swept")
	})

	loginLimiter := middleware.NewRateLimiter(float64(env.LoginRatePerSec), 5)
	loginLimiter.StartCleanup(ctx, 10*time.Minute)
	inviteLimiter := middleware.NewRateLimiter(10, 20)
	inviteLimiter.StartCleanup(ctx, 10*time.Minute)

	loc, err := time.LoadLocation(event.Timezone)
	if err != nil {
		loc = time.Local
	}

	api := &handlers.API{
		Guests:   repositories.GuestRepository{DB: db},
		Payments: repositories.PaymentRepository{DB: db},
		Auth:     auth,
		Session:  auth,
		Sessions: sessions,
		Event:    event,
		BaseURL:  env.PublicBaseURL,
		Location: loc,
	}
	r := router.NewRouter(env, api, loginLimiter, inviteLimiter)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", env.AppAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return
	}
	log.Info().Msg("server stopped")
}
