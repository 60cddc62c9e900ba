package routes

import (
	"github.com/Burhanmalu/LUMARIYA/auth"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers /api/auth. OAuth providers are mounted only when
// their client credentials are configured.
func SetupAuthRoutes(api *gin.RouterGroup, d Deps, authenticated gin.HandlerFunc) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(d.DB, d.Tokens))
		authGroup.POST("/login", auth.LoginHandler(d.DB, d.Tokens))
		authGroup.GET("/me", authenticated, auth.MeHandler)

		for _, p := range d.Providers {
			authGroup.GET("/"+p.Name+"/login", auth.OAuthLoginHandler(p, d.States))
			authGroup.GET("/"+p.Name+"/callback",
				auth.OAuthCallbackHandler(d.DB, p, d.States, d.Tokens, d.Config.FrontendURL))
		}
	}
}
