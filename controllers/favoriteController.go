package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/models"
)

type FavoriteController struct {
	favorites *mongo.Collection
	validate  *validator.Validate
}

func NewFavoriteController(favorites *mongo.Collection) *FavoriteController {
	return &FavoriteController{favorites: favorites, validate: validator.New()}
}

// GetFavorite is an existence probe: it returns the favorite document for
// the exact (mealId, userEmail) pair, or JSON null when none was recorded.
func (fc *FavoriteController) GetFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	mealID := r.URL.Query().Get("mealId")
	userEmail := r.URL.Query().Get("userEmail")
	if mealID == "" || userEmail == "" {
		respondError(w, http.StatusBadRequest, "mealId and userEmail are required")
		return
	}

	var favorite models.Favorite
	err := fc.favorites.FindOne(ctx, bson.M{"mealId": mealID, "userEmail": userEmail}).Decode(&favorite)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondJSON(w, http.StatusOK, nil)
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "Error retrieving favorite")
		return
	}

	respondJSON(w, http.StatusOK, favorite)
}

// AddFavorite checks for an existing (mealId, userEmail) pair before
// inserting. There is no unique index behind this; the check is the only
// duplicate defense, which is acceptable for a per-user UI toggle.
func (fc *FavoriteController) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var favorite models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&favorite); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := fc.validate.Struct(favorite); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := fc.favorites.CountDocuments(ctx, bson.M{"mealId": favorite.MealID, "userEmail": favorite.UserEmail})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error checking existing favorite")
		return
	}
	if count > 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "Meal is already in favorites",
		})
		return
	}

	favorite.ID = primitive.NewObjectID()
	favorite.AddedAt = time.Now()

	result, err := fc.favorites.InsertOne(ctx, favorite)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Favorite could not be added")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"insertedId": result.InsertedID,
		"message":    "Added to favorites",
	})
}
