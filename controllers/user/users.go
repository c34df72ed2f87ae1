package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hassaan1220/Ecommerce-Shopsy/auth"
	"github.com/hassaan1220/Ecommerce-Shopsy/config"
	"github.com/hassaan1220/Ecommerce-Shopsy/middleware"
	"github.com/hassaan1220/Ecommerce-Shopsy/models"
	"github.com/hassaan1220/Ecommerce-Shopsy/pkg/logger"
)

type SignupInput struct {
	FirstName string `form:"first_name" json:"first_name" binding:"required"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Password  string `form:"password" json:"password" binding:"required"`
}

type LoginInput struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// SignupUser registers a local-credential account. Returns
// models.ErrUserExists when the email is already taken.
func SignupUser(db *gorm.DB, in SignupInput) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, models.ErrUserExists
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Role:      "user",
	}
	if err := db.Create(&user).Error; err != nil {
		// The unique constraint catches a concurrent signup that slipped
		// past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

// LoginUser verifies local credentials. Unknown email and wrong password
// both map to models.ErrInvalidCredentials.
func LoginUser(db *gorm.DB, in LoginInput) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", in.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(in.Password, user.Password) {
		return nil, models.ErrInvalidCredentials
	}
	return &user, nil
}

// GET /login and GET /signup
//
// Stand-ins for the rendered pages; every auth failure redirects here, so
// the target must exist.
func LoginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "login"})
	}
}

func SignupPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "signup"})
	}
}

// POST /signup
func SignupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in SignupInput
		if err := c.ShouldBind(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if _, err := SignupUser(db.WithContext(c.Request.Context()), in); err != nil {
			if errors.Is(err, models.ErrUserExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
				return
			}
			logger.Get().Error().Err(err).Msg("signup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while registering the user"})
			return
		}

		c.Redirect(http.StatusSeeOther, "/login")
	}
}

// POST /login
func LoginHandler(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in LoginInput
		if err := c.ShouldBind(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := LoginUser(db.WithContext(c.Request.Context()), in)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			logger.Get().Error().Err(err).Msg("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login error"})
			return
		}

		token, err := auth.IssueToken(cfg.JWTSecret, user)
		if err != nil {
			logger.Get().Error().Err(err).Msg("token issue failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login error"})
			return
		}

		auth.SetSessionCookie(c, token, cfg.Production())
		c.Redirect(http.StatusSeeOther, "/dashboard")
	}
}

// GET /logout
func LogoutHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.ClearSessionCookie(c, cfg.Production())
		c.Redirect(http.StatusSeeOther, "/login")
	}
}

// GET /dashboard
func DashboardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "No user found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching data"})
			return
		}

		var products []models.Product
		if err := db.WithContext(c.Request.Context()).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching data"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "products": products})
	}
}
