package router

import (
	"github.com/smarthotel/user-service/internal/application"
	"github.com/smarthotel/user-service/internal/container"
	"github.com/smarthotel/user-service/internal/infrastructure/notification"
	pginfra "github.com/smarthotel/user-service/internal/infrastructure/postgres"
	handlers "github.com/smarthotel/user-service/internal/interface/http"
	"github.com/smarthotel/user-service/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	repo := pginfra.NewUserRepository(container.GetPGPool())
	notifier := notification.NewQueueNotifier(container.GetRabbitPub(), container.GetLogger(), cfg.VerifyEmailURL)

	service := application.NewService(
		repo,
		container.GetJWT(),
		notifier,
		container.GetLogger(),
		cfg.VerifyTokenTTL,
	)

	authHandler := handlers.NewAuthHandler(service, container.GetLogger())
	userHandler := handlers.NewUserHandler(service, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(authHandler, userHandler, repo, container.GetJWT()))
}
