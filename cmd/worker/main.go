package main

import (
	"MediaVault/config"
	"MediaVault/internal/repo"
	"MediaVault/internal/storage"
	"MediaVault/internal/worker"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitStorage()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("thumbnail worker started")
	if err := worker.RunThumbnailWorker(ctx); err != nil {
		log.Fatalf("thumbnail worker stopped: %v", err)
	}
}
