package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/controllers"
	"github.com/Burhanmalu/LUMARIYA/middleware"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

func respondWithToken(c *gin.Context, tokens *Tokens, status int, user *models.User) {
	token, err := tokens.Issue(user)
	if err != nil {
		apperr.Respond(c, apperr.Internal(err, "issue token"))
		return
	}
	c.JSON(status, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

// POST /api/auth/register
func RegisterHandler(db *gorm.DB, tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := controllers.BindJSON(c, &input); err != nil {
			apperr.Respond(c, err)
			return
		}

		user, err := Register(c.Request.Context(), db, input)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		respondWithToken(c, tokens, http.StatusCreated, user)
	}
}

// POST /api/auth/login
func LoginHandler(db *gorm.DB, tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := controllers.BindJSON(c, &input); err != nil {
			apperr.Respond(c, err)
			return
		}

		user, err := Login(c.Request.Context(), db, input)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		respondWithToken(c, tokens, http.StatusOK, user)
	}
}

// GET /api/auth/me
func MeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// GET /api/auth/:provider/login
func OAuthLoginHandler(p *Provider, states StateStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := states.New(c.Request.Context())
		if err != nil {
			apperr.Respond(c, apperr.Internal(err, "create oauth state"))
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, p.OAuth.AuthCodeURL(state))
	}
}

// GET /api/auth/:provider/callback
// Exchanges the code, signs the user in and hands the token to the frontend.
func OAuthCallbackHandler(db *gorm.DB, p *Provider, states StateStore, tokens *Tokens, frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := zerolog.Ctx(ctx)

		if err := states.Consume(ctx, c.Query("state")); err != nil {
			apperr.Respond(c, apperr.InvalidInput("OAuth authentication failed: invalid state"))
			return
		}
		code := c.Query("code")
		if code == "" {
			apperr.Respond(c, apperr.InvalidInput("OAuth authentication failed: missing code"))
			return
		}

		tok, err := p.OAuth.Exchange(ctx, code)
		if err != nil {
			log.Warn().Err(err).Str("provider", p.Name).Msg("oauth code exchange failed")
			apperr.Respond(c, apperr.InvalidInput("OAuth authentication failed"))
			return
		}

		profile, err := p.Profile(ctx, p.OAuth.Client(ctx, tok))
		if err != nil {
			log.Warn().Err(err).Str("provider", p.Name).Msg("oauth profile fetch failed")
			apperr.Respond(c, apperr.InvalidInput("OAuth authentication failed"))
			return
		}

		user, err := FindOrCreateOAuthUser(ctx, db, p.Name, profile)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		token, err := tokens.Issue(user)
		if err != nil {
			apperr.Respond(c, apperr.Internal(err, "issue token"))
			return
		}
		target := strings.TrimRight(frontendURL, "/") + "/auth/callback?token=" + url.QueryEscape(token)
		c.Redirect(http.StatusTemporaryRedirect, target)
	}
}
