package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/peklos/nextbank/config"
	"github.com/peklos/nextbank/services"
	"golang.org/x/crypto/bcrypt"
)

// SignInRequest представляет данные для входа
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse представляет ответ с JWT-токеном
type AuthResponse struct {
	Token    string `json:"token"`
	ClientID uint   `json:"client_id"`
	Email    string `json:"email"`
}

// AuthController обрабатывает регистрацию и вход клиентов
type AuthController struct {
	clientService *services.ClientService
	cfg           *config.Config
	validator     *validator.Validate
}

// NewAuthController создает новый экземпляр AuthController
func NewAuthController(clientService *services.ClientService, cfg *config.Config) *AuthController {
	return &AuthController{
		clientService: clientService,
		cfg:           cfg,
		validator:     validator.New(),
	}
}

// SignUp обрабатывает запрос на регистрацию клиента
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req services.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateRequest(c.validator, req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	client, err := c.clientService.Create(req)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := c.issueToken(client.ID, client.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Token:    token,
		ClientID: client.ID,
		Email:    client.Email,
	})
}

// SignIn обрабатывает запрос на вход клиента
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateRequest(c.validator, req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	client, err := c.clientService.FindByEmail(req.Email)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "неверный email или пароль"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.HashedPassword), []byte(req.Password)); err != nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "неверный email или пароль"})
		return
	}

	token, err := c.issueToken(client.ID, client.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token:    token,
		ClientID: client.ID,
		Email:    client.Email,
	})
}

// issueToken выпускает JWT-токен клиента
func (c *AuthController) issueToken(clientID uint, email string) (string, error) {
	claims := jwt.MapClaims{
		"client_id": clientID,
		"email":     email,
		"exp":       time.Now().Add(time.Duration(c.cfg.JWT.ExpiresIn) * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.cfg.JWT.SecretKey))
}
