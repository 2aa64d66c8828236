package controller

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/helper"
)

// AuthController mints the bearer tokens the SPA attaches after the
// identity provider signs a user in.
type AuthController struct {
	jwtSecret string
}

func NewAuthController(jwtSecret string) *AuthController {
	return &AuthController{jwtSecret: jwtSecret}
}

func (ac *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := helper.GenerateToken(body.Email, ac.jwtSecret)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")
		respondError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"token": token})
}
