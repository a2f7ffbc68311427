package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/sparknest-app/sparknest-backend/internal/api/http"
	"github.com/sparknest-app/sparknest-backend/internal/api/http/middleware"
	"github.com/sparknest-app/sparknest-backend/internal/blob"
	"github.com/sparknest-app/sparknest-backend/internal/content"
	"github.com/sparknest-app/sparknest-backend/internal/gateways/nano"
	"github.com/sparknest-app/sparknest-backend/internal/gateways/openai"
	"github.com/sparknest-app/sparknest-backend/internal/gateways/videos"
	"github.com/sparknest-app/sparknest-backend/internal/identity"
	"github.com/sparknest-app/sparknest-backend/internal/uploads"
	"github.com/sparknest-app/sparknest-backend/internal/users"
	"github.com/sparknest-app/sparknest-backend/internal/webhooks"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string

	Verifier      *identity.Verifier
	ClerkClient   *identity.Client
	WebhookSecret string

	Users   *users.Service
	Content *content.Service
	Storage blob.Storage
	Videos  *videos.Service
	OpenAI  *openai.Client
	Nano    *nano.Client
	Cache   *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Cache)
	healthHandler.RegisterRoutes(r)

	// Signed deliveries, no session.
	webhooks.NewClerkHandler(dep.WebhookSecret, dep.Users).Register(r)

	// The OpenAI endpoints are open; the nano editor requires a session.
	openai.Register(r, dep.OpenAI)

	sessioned := r.Group("/")
	sessioned.Use(identity.RequireSession(dep.Verifier))
	nano.Register(sessioned, dep.Nano)

	api := r.Group("/api/v1")
	api.Use(identity.RequireSession(dep.Verifier))

	users.Register(api, dep.Users, dep.ClerkClient)
	content.Register(api, dep.Content)
	videos.Register(api, dep.Videos)
	if dep.Storage != nil {
		uploads.Register(api, dep.Storage)
	}

	return r
}
