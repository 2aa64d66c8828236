package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/models"
)

type ReviewController struct {
	reviews  *mongo.Collection
	validate *validator.Validate
}

func NewReviewController(reviews *mongo.Collection) *ReviewController {
	return &ReviewController{reviews: reviews, validate: validator.New()}
}

// GetReviews lists reviews newest-first, optionally scoped to one meal.
func (rc *ReviewController) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	filter := bson.M{}
	if foodID := r.URL.Query().Get("foodId"); foodID != "" {
		filter["foodId"] = foodID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := rc.reviews.Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Msg("listing reviews failed")
		respondError(w, http.StatusInternalServerError, "Error retrieving reviews")
		return
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding reviews")
		return
	}

	respondJSON(w, http.StatusOK, reviews)
}

func (rc *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := rc.validate.Struct(review); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()

	result, err := rc.reviews.InsertOne(ctx, review)
	if err != nil {
		log.Error().Err(err).Msg("review insert failed")
		respondError(w, http.StatusInternalServerError, "Review could not be created")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"insertedId": result.InsertedID,
		"message":    "Review added successfully",
	})
}
