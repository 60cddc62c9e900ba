package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/config"
	"github.com/Burhanmalu/LUMARIYA/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"gorm.io/gorm"
)

// Profile is what a provider tells us about the signed-in person.
type Profile struct {
	ID            string
	Email         string
	EmailVerified bool
	Name          string
}

type Provider struct {
	Name    string
	OAuth   *oauth2.Config
	Profile func(ctx context.Context, client *http.Client) (Profile, error)
}

func callbackURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/api/auth/" + name + "/callback"
}

func GoogleProvider(cfg *config.Config) *Provider {
	return &Provider{
		Name: "google",
		OAuth: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			Endpoint:     endpoints.Google,
			RedirectURL:  callbackURL(cfg.OAuthRedirectBase, "google"),
			Scopes:       []string{"openid", "email", "profile"},
		},
		Profile: fetchGoogleProfile,
	}
}

func FacebookProvider(cfg *config.Config) *Provider {
	return &Provider{
		Name: "facebook",
		OAuth: &oauth2.Config{
			ClientID:     cfg.Facebook.ClientID,
			ClientSecret: cfg.Facebook.ClientSecret,
			Endpoint:     endpoints.Facebook,
			RedirectURL:  callbackURL(cfg.OAuthRedirectBase, "facebook"),
			Scopes:       []string{"email", "public_profile"},
		},
		Profile: fetchFacebookProfile,
	}
}

func fetchGoogleProfile(ctx context.Context, client *http.Client) (Profile, error) {
	var info struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v3/userinfo", &info); err != nil {
		return Profile{}, err
	}
	name := info.Name
	if name == "" {
		name, _, _ = strings.Cut(info.Email, "@")
	}
	return Profile{ID: info.Sub, Email: info.Email, EmailVerified: info.EmailVerified, Name: name}, nil
}

func fetchFacebookProfile(ctx context.Context, client *http.Client) (Profile, error) {
	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := getJSON(ctx, client, "https://graph.facebook.com/me?fields=id,name,email", &info); err != nil {
		return Profile{}, err
	}
	name := info.Name
	if name == "" {
		name = "Facebook User"
	}
	// The Graph API only returns confirmed addresses.
	return Profile{ID: info.ID, Email: info.Email, EmailVerified: info.Email != "", Name: name}, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("profile request: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// FindOrCreateOAuthUser signs a provider profile in. A known provider account
// signs straight in. Otherwise the email must be verified by the provider: an
// existing account without a linked provider gets this one linked, and a new
// account is created when none matches.
func FindOrCreateOAuthUser(ctx context.Context, db *gorm.DB, provider string, p Profile) (*models.User, error) {
	email := normalizeEmail(p.Email)
	if email == "" {
		return nil, apperr.InvalidInput("Email not provided by %s", provider)
	}
	if p.ID == "" {
		return nil, apperr.InvalidInput("Account id not provided by %s", provider)
	}

	var user models.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("oauth_provider = ? AND oauth_id = ?", provider, p.ID).First(&user).Error
		if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if !p.EmailVerified {
			return apperr.Forbidden("Email not verified by %s", provider)
		}

		err = tx.Where("email = ?", email).First(&user).Error
		switch {
		case err == nil:
			if user.OAuthProvider != nil {
				return nil
			}
			user.OAuthProvider = &provider
			user.OAuthID = &p.ID
			return tx.Save(&user).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				Email:         email,
				FullName:      p.Name,
				OAuthProvider: &provider,
				OAuthID:       &p.ID,
			}
			return tx.Create(&user).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, apperr.FromDB(err, "User not found")
	}
	return &user, nil
}
