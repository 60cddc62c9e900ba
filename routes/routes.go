package routes

import (
	"net/http"
	"time"

	"github.com/Burhanmalu/LUMARIYA/auth"
	"github.com/Burhanmalu/LUMARIYA/config"
	"github.com/Burhanmalu/LUMARIYA/events"
	"github.com/Burhanmalu/LUMARIYA/logger"
	"github.com/Burhanmalu/LUMARIYA/metrics"
	"github.com/Burhanmalu/LUMARIYA/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps is everything the route groups hand to their controllers.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Tokens    *auth.Tokens
	States    auth.StateStore
	Providers []*auth.Provider
	Publisher events.Publisher
	Hub       *events.Hub
	Metrics   *metrics.ServerMetrics
	Log       zerolog.Logger
}

// NewRouter builds the gin engine with the shared middleware stack and every
// route group mounted.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20

	r.Use(logger.GinMiddleware(d.Log))
	r.Use(d.Metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/static/uploads", d.Config.UploadDir)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	r.GET("/health", health)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "LUMARIYA API", "status": "ok"})
	})

	SetupRoutes(r, d)
	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// SetupRoutes wires up the Auth, Product, User, Order and Admin groups under /api.
func SetupRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")
	authenticated := middleware.Authenticate(d.Tokens, d.DB)

	SetupAuthRoutes(api, d, authenticated)
	SetupProductRoutes(api, d, authenticated)
	SetupUserRoutes(api, d, authenticated)
	SetupOrderRoutes(api, d, authenticated)
	SetupAdminRoutes(api, d, authenticated)
}
