package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/auth"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/finance"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/validation"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is returned on register and login. The token is also set
// as the session cookie.
type SessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Sessions issues session tokens and cookies for the auth handlers.
type Sessions struct {
	Tokens       *auth.TokenManager
	CookieSecure bool
}

func (s Sessions) start(c *gin.Context, user *models.User) (string, error) {
	token, err := s.Tokens.Issue(auth.Principal{UserID: user.ID, Email: user.Email})
	if err != nil {
		return "", err
	}
	auth.SetSessionCookie(c, token, s.Tokens, s.CookieSecure)
	return token, nil
}

// RegisterHandler creates an account and signs the new user in.
func RegisterHandler(svc *finance.AuthService, sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := validation.BindJSON(c, &req); err != nil {
			respondValidation(c, err)
			return
		}

		user, err := svc.Register(c.Request.Context(), finance.RegisterInput{
			Name: req.Name, Email: req.Email, Password: req.Password,
		})
		if err != nil {
			_ = c.Error(err)
			return
		}

		token, err := sessions.start(c, user)
		if err != nil {
			_ = c.Error(err)
			return
		}
		log := requestLogger(c)
		log.Info().Int64("user_id", user.ID).Msg("user registered")
		c.JSON(http.StatusCreated, SessionResponse{User: user, Token: token})
	}
}

func LoginHandler(svc *finance.AuthService, sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := validation.BindJSON(c, &req); err != nil {
			respondValidation(c, err)
			return
		}

		user, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, finance.ErrInvalidCredentials) {
			respondMessage(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err != nil {
			_ = c.Error(err)
			return
		}

		token, err := sessions.start(c, user)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, SessionResponse{User: user, Token: token})
	}
}

// LogoutHandler clears the session cookie. Tokens are stateless, so a
// bearer token stays valid until it expires.
func LogoutHandler(sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.ClearSessionCookie(c, sessions.CookieSecure)
		respondMessage(c, http.StatusOK, "Logged out")
	}
}

// GetCurrentUserHandler reads the caller fresh from storage so the balance
// reflects the latest transactions.
func GetCurrentUserHandler(svc *finance.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		user, err := svc.Get(c.Request.Context(), p.UserID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
