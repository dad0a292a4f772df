package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/timahq/socialdata/internal/cache"
	"github.com/timahq/socialdata/internal/extractor"
	"github.com/timahq/socialdata/pkg/logging"
)

// Router sets up API routes
type Router struct {
	handler   *JSONRPCHandler
	extractor *extractor.Service
	cache     *cache.Cache
	logger    *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(svc *extractor.Service, redisCache *cache.Cache) *Router {
	handler := NewJSONRPCHandler()
	router := &Router{
		handler:   handler,
		extractor: svc,
		cache:     redisCache,
		logger:    logging.GetLogger().With(zap.String("component", "api-router")),
	}

	// Register all API methods
	router.registerMethods()

	return router
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// JSON-RPC endpoint
	engine.POST("/", r.handler.Handle)
}

// registerMethods registers all API methods
func (r *Router) registerMethods() {
	// Instagram API
	r.handler.RegisterMethod("instagram.get_profile_metadata", r.instagramProfile)
	r.handler.RegisterMethod("instagram.get_post_metadata", r.instagramPosts)
	r.handler.RegisterMethod("instagram.get_mention_metadata", r.instagramMentions)
	r.handler.RegisterMethod("instagram.get_activity", r.instagramActivity)

	// YouTube API
	r.handler.RegisterMethod("youtube.get_channel_metadata", r.youtubeChannel)
	r.handler.RegisterMethod("youtube.get_video_metadata", r.youtubeVideos)
	r.handler.RegisterMethod("youtube.get_activity", r.youtubeActivity)

	// Spotify API
	r.handler.RegisterMethod("spotify.get_artist_data", r.spotifyArtist)
	r.handler.RegisterMethod("spotify.get_podcast_data", r.spotifyPodcast)

	// Batch API
	r.handler.RegisterMethod("extractor.bulk_profiles", r.bulkProfiles)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"
	if r.cache != nil {
		if err := r.cache.Health(c.Request.Context()); err != nil {
			status = "DEGRADED"
		}
	}
	c.JSON(200, gin.H{
		"status":  status,
		"service": "socialdata-api",
	})
}
