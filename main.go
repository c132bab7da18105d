// File: preen/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"preen/config"
	"preen/cron"
	"preen/database"
	aftercareRepo "preen/database/repository/aftercare"
	clientRepo "preen/database/repository/client"
	holdRepo "preen/database/repository/hold"
	professionalRepo "preen/database/repository/professional"
	schedulerRepo "preen/database/repository/scheduler"
	"preen/handlers"
	"preen/middleware"
	"preen/routes"
	"preen/services/availability"
	"preen/services/notification"
	"preen/services/schedule"
	"preen/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitHoldCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	profRepo := professionalRepo.NewMongoProfessionalRepo()
	cliRepo := clientRepo.NewMongoClientRepo()
	schedRepo := schedulerRepo.NewMongoSchedulerRepo()
	careRepo := aftercareRepo.NewMongoAftercareRepo()
	holdStore := holdRepo.NewRedisHoldStore()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Clients:       cliRepo,
		Professionals: profRepo,
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Professionals: profRepo,
		Scheduler:     schedRepo,
		Holds:         holdStore,
	}

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer queueClient.Close()

	scheduleService := &schedule.DefaultScheduleService{
		Scheduler:     schedRepo,
		Aftercare:     careRepo,
		Professionals: profRepo,
		Notifier:      notificationService,
		Queue:         queueClient,
	}

	// Background reminder worker.
	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Schedule:     handlers.NewScheduleHandler(scheduleService),
		Holds:        handlers.NewHoldHandler(holdStore),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
