package main

import (
	"context"
	"log"
	"time"

	"github.com/HenrryVelezC/minierp/internal/app/api"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := api.Seed(ctx); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
	log.Printf("seed completed")
}
