package main

import (
	"context"
	"log"

	"github.com/sparknest-app/sparknest-backend/config"
	"github.com/sparknest-app/sparknest-backend/internal/blob"
	"github.com/sparknest-app/sparknest-backend/internal/bootstrap"
	"github.com/sparknest-app/sparknest-backend/internal/content"
	"github.com/sparknest-app/sparknest-backend/internal/gateways/nano"
	"github.com/sparknest-app/sparknest-backend/internal/gateways/openai"
	"github.com/sparknest-app/sparknest-backend/internal/gateways/videos"
	"github.com/sparknest-app/sparknest-backend/internal/identity"
	"github.com/sparknest-app/sparknest-backend/internal/store"
	"github.com/sparknest-app/sparknest-backend/internal/users"
)

const serviceName = "sparknest-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	fb, err := bootstrap.OpenFirebase(ctx, cfg.Firebase.CredentialsPath, cfg.Firebase.ProjectID, cfg.Firebase.StorageBucket)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fb.Close()

	cache, err := bootstrap.OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if cache != nil {
		defer cache.Close()
	}

	verifier, err := identity.NewVerifier(cfg.Clerk.JWTPublicKey)
	if err != nil {
		log.Fatalf("clerk verifier: %v", err)
	}

	var clerkClient *identity.Client
	if cfg.Clerk.SecretKey != "" {
		clerkClient = identity.NewClient(cfg.Clerk.SecretKey)
	}

	docStore := store.NewFirestoreStore(fb.Firestore)
	userSvc := users.NewService(docStore)
	contentSvc := content.NewService(docStore, userSvc)

	var storage blob.Storage
	if fb.Bucket != nil {
		storage = blob.NewGCSStorage(fb.Bucket, cfg.Firebase.StorageBucket)
	}

	var openaiClient *openai.Client
	if cfg.OpenAI.APIKey != "" {
		openaiClient = openai.NewClient(cfg.OpenAI.APIKey)
	}

	var nanoClient *nano.Client
	if cfg.FalAI.APIKey != "" {
		nanoClient = nano.NewClient(cfg.FalAI.APIKey)
	}

	var videoSvc *videos.Service
	if cfg.YouTube.APIKey != "" {
		videoSvc, err = videos.NewService(ctx, cfg.YouTube.APIKey, videos.NewCache(cache))
		if err != nil {
			log.Fatalf("youtube: %v", err)
		}
	}

	if sched := bootstrap.StartScheduler(videoSvc); sched != nil {
		defer sched.Stop()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Verifier:       verifier,
		ClerkClient:    clerkClient,
		WebhookSecret:  cfg.Clerk.WebhookSecret,
		Users:          userSvc,
		Content:        contentSvc,
		Storage:        storage,
		Videos:         videoSvc,
		OpenAI:         openaiClient,
		Nano:           nanoClient,
		Cache:          cache,
	})

	log.Printf("[info] operation=startup service=%s version=%s port=%s", serviceName, cfg.App.Version, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
