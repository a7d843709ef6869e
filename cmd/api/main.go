package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/amplyfy/consulting-crm/api/internal/auth"
	"github.com/amplyfy/consulting-crm/api/internal/config"
	"github.com/amplyfy/consulting-crm/api/internal/database"
	"github.com/amplyfy/consulting-crm/api/internal/handler"
	middlewarepkg "github.com/amplyfy/consulting-crm/api/internal/middleware"
	"github.com/amplyfy/consulting-crm/api/internal/places"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
	"github.com/amplyfy/consulting-crm/api/internal/repository/jsonstore"
	"github.com/amplyfy/consulting-crm/api/internal/repository/mongostore"
	"github.com/amplyfy/consulting-crm/api/internal/repository/pgstore"
	"github.com/amplyfy/consulting-crm/api/internal/router"
	"github.com/amplyfy/consulting-crm/api/internal/service"
	"github.com/amplyfy/consulting-crm/api/internal/service/qualify"
)

type repositories struct {
	users    repository.UsersRepository
	leads    repository.LeadsRepository
	expenses repository.ExpensesRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer repos.close()

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)

	authService := service.NewAuthService(repos.users, sessions)
	if err := authService.SeedAdmin(ctx, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	policy := qualify.Policy{
		MinReviews: cfg.LeadFinder.MinReviews,
		MaxReviews: cfg.LeadFinder.MaxReviews,
		MinRating:  cfg.LeadFinder.MinRating,
		MaxLeads:   cfg.LeadFinder.MaxLeads,
	}
	finderService := service.NewLeadFinderService(places.NewClient(cfg.PlacesAPIKey), repos.leads, policy, cfg.PhoneRegion)
	leadsService := service.NewLeadsService(repos.leads)
	employeesService := service.NewEmployeesService(repos.users)
	expensesService := service.NewExpensesService(repos.expenses, cfg.UploadsDir)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService, sessions.TTL()),
		Leads:      handler.NewLeadsHandler(leadsService),
		LeadFinder: handler.NewLeadFinderHandler(finderService),
		Employees:  handler.NewEmployeesHandler(employeesService),
		Expenses:   handler.NewExpensesHandler(expensesService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, sessions, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	log.Printf("listening on :%s store=%s", cfg.Port, cfg.StoreDriver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &repositories{
			users:    pgstore.NewUsersRepository(pool),
			leads:    pgstore.NewLeadsRepository(pool),
			expenses: pgstore.NewExpensesRepository(pool),
			close:    pool.Close,
		}, nil

	case config.DriverMongo:
		db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &repositories{
			users:    mongostore.NewUsersRepository(db),
			leads:    mongostore.NewLeadsRepository(db),
			expenses: mongostore.NewExpensesRepository(db),
			close: func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := db.Client().Disconnect(disconnectCtx); err != nil {
					log.Printf("mongo disconnect failed: %v", err)
				}
			},
		}, nil

	default:
		store, err := jsonstore.Open(cfg.DataFile)
		if err != nil {
			return nil, err
		}
		return &repositories{
			users:    jsonstore.NewUsersRepository(store),
			leads:    jsonstore.NewLeadsRepository(store),
			expenses: jsonstore.NewExpensesRepository(store),
			close:    func() {},
		}, nil
	}
}
