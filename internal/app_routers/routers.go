package approuters

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devimrittika/Green-Planet/internal/configuration"
	"github.com/devimrittika/Green-Planet/internal/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartServer runs the application server, the websocket feed server
// and the background task processor until a shutdown signal arrives.
func StartServer(container *configuration.Container) {
	logger := container.Logger

	handler.RegisterValidators()

	appServer := createAppServer(container)
	socketServer := createSocketServer(container)

	serverErrors := make(chan error, 2)

	go func() {
		logger.Info("feed server starting",
			zap.Int("port", container.Config.Server.SocketPort))
		if err := socketServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("feed server error: %w", err)
		}
	}()

	go func() {
		logger.Info("application server starting",
			zap.Int("port", container.Config.Server.AppPort))
		if err := appServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("app server error: %w", err)
		}
	}()

	go func() {
		logger.Info("task processor starting")
		if err := container.Processor.Start(); err != nil {
			logger.Error("task processor failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", zap.Error(err))
	case sig := <-quit:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	container.Hub.Stop()

	if err := socketServer.Shutdown(ctx); err != nil {
		logger.Warn("feed server shutdown error", zap.Error(err))
	}
	if err := appServer.Shutdown(ctx); err != nil {
		logger.Warn("app server shutdown error", zap.Error(err))
	}

	logger.Info("graceful shutdown complete")
}

func createAppServer(container *configuration.Container) *http.Server {
	router := gin.Default()

	router.Use(handler.TraceIDMiddleware())
	router.Use(cors.New(corsConfig(container)))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Green Planet API!",
		})
	})
	router.Static("/uploads", container.Config.Server.UploadsDir)

	UserRouters(router, container)
	BlogRouters(router, container)
	DonationRouters(router, container)
	SellPlantRouters(router, container)
	SwapRouters(router, container)
	OrderRouters(router, container)
	MonitorRouters(router, container)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", container.Config.Server.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func createSocketServer(container *configuration.Container) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.TraceIDMiddleware())

	FeedRouters(router, container)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", container.Config.Server.SocketPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func corsConfig(container *configuration.Container) cors.Config {
	origins := container.Config.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
