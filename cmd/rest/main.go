package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"saga-be/internal/bootstrap"
	"saga-be/internal/config"
	"saga-be/internal/server"
	"saga-be/internal/tracer"
	"saga-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Verbose, database.PoolConfig{
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	shutdownTracer := tracer.InitTracer(container.Logger)

	// 4. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.IndexConsumerService.Consume(ctx); err != nil {
		container.Logger.Error("MAIN", "Index consumer failed to start", map[string]interface{}{"error": err.Error()})
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown()
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		container.Logger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
	}

	_ = shutdownTracer(context.Background())
	if err := container.Close(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
