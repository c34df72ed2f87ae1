package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hassaan1220/Ecommerce-Shopsy/config"
	"github.com/hassaan1220/Ecommerce-Shopsy/models"
	"github.com/hassaan1220/Ecommerce-Shopsy/pkg/logger"
)

const stateCookie = "oauth_state"

// GoogleOAuthConfig builds the OAuth2 config for the Google login flow.
func GoogleOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleCallbackURL,
		Scopes:       []string{"profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

// GET /auth/google
func GoogleLoginHandler(cfg *config.Config) gin.HandlerFunc {
	oauthCfg := GoogleOAuthConfig(cfg)
	return func(c *gin.Context) {
		state := generateRandomString(16)
		c.SetCookie(stateCookie, state, 300, "/", "", cfg.Production(), true)
		c.Redirect(http.StatusSeeOther, oauthCfg.AuthCodeURL(state))
	}
}

// GET /auth/google/callback
//
// Exchanges the authorization code, resolves the Google identity to a local
// user and starts a session. Every failure lands back on /login, same as a
// missing session.
func GoogleCallbackHandler(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	oauthCfg := GoogleOAuthConfig(cfg)
	return func(c *gin.Context) {
		log := logger.Get()

		state, err := c.Cookie(stateCookie)
		if err != nil || state == "" || c.Query("state") != state {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.SetCookie(stateCookie, "", -1, "/", "", cfg.Production(), true)

		code := c.Query("code")
		if code == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		ctx := c.Request.Context()
		tok, err := oauthCfg.Exchange(ctx, code)
		if err != nil {
			log.Error().Err(err).Msg("google code exchange failed")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		svc, err := goauth2.NewService(ctx, option.WithTokenSource(oauthCfg.TokenSource(ctx, tok)))
		if err != nil {
			log.Error().Err(err).Msg("google userinfo service init failed")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		info, err := svc.Userinfo.Get().Do()
		if err != nil {
			log.Error().Err(err).Msg("google userinfo fetch failed")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		user, err := ResolveGoogleUser(ctx, db, info.Email, info.Name)
		if err != nil {
			log.Error().Err(err).Msg("google user resolve failed")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		token, err := IssueToken(cfg.JWTSecret, user)
		if err != nil {
			log.Error().Err(err).Msg("token issue failed")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		SetSessionCookie(c, token, cfg.Production())
		c.Redirect(http.StatusSeeOther, "/dashboard")
	}
}

// ResolveGoogleUser maps a verified Google identity to a local user row.
// Existing users are returned unchanged (no profile sync on repeat login).
// New emails get a row with the display name as first name, no last name,
// no password and the default role. The insert is conflict-safe: two
// concurrent first logins for the same email converge on one row.
func ResolveGoogleUser(ctx context.Context, db *gorm.DB, email, displayName string) (*models.User, error) {
	if email == "" {
		return nil, models.ErrNoEmail
	}

	var user models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	fresh := models.User{
		FirstName: displayName,
		LastName:  "",
		Email:     email,
		Password:  "",
		Role:      "user",
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&fresh).Error; err != nil {
		return nil, err
	}

	// Re-read so the loser of a concurrent first login sees the winner's row.
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_state"
	}
	return hex.EncodeToString(bytes)
}
