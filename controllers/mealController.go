package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/models"
)

type MealController struct {
	meals    *mongo.Collection
	validate *validator.Validate
}

func NewMealController(meals *mongo.Collection) *MealController {
	return &MealController{meals: meals, validate: validator.New()}
}

// GetMeals lists every meal, or only one owner's meals when ?email= is set.
func (mc *MealController) GetMeals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	filter := bson.M{}
	if email := r.URL.Query().Get("email"); email != "" {
		filter["userEmail"] = email
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := mc.meals.Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Msg("listing meals failed")
		respondError(w, http.StatusInternalServerError, "Error retrieving meals")
		return
	}
	defer cursor.Close(ctx)

	meals := []models.Meal{}
	if err := cursor.All(ctx, &meals); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding meals")
		return
	}

	respondJSON(w, http.StatusOK, meals)
}

func (mc *MealController) GetMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid meal ID format")
		return
	}

	var meal models.Meal
	err = mc.meals.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(w, http.StatusNotFound, "Meal not found")
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "Error retrieving meal")
		return
	}

	respondJSON(w, http.StatusOK, meal)
}

func (mc *MealController) CreateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var meal models.Meal
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := mc.validate.Struct(meal); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	meal.ID = primitive.NewObjectID()
	meal.CreatedAt = time.Now()

	result, err := mc.meals.InsertOne(ctx, meal)
	if err != nil {
		log.Error().Err(err).Msg("meal insert failed")
		respondError(w, http.StatusInternalServerError, "Meal could not be created")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"insertedId": result.InsertedID,
		"message":    "Meal created successfully",
	})
}

// UpdateMeal applies the owner's edit as a $set of the supplied fields.
func (mc *MealController) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid meal ID format")
		return
	}

	var meal models.Meal
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updateObj := bson.M{}
	if meal.FoodName != nil {
		updateObj["foodName"] = meal.FoodName
	}
	if meal.ChefName != nil {
		updateObj["chefName"] = meal.ChefName
	}
	if meal.Price != nil {
		if *meal.Price < 0 {
			respondError(w, http.StatusBadRequest, "Price must not be negative")
			return
		}
		updateObj["price"] = meal.Price
	}
	if meal.Rating != 0 {
		updateObj["rating"] = meal.Rating
	}
	if meal.Ingredients != nil {
		updateObj["ingredients"] = meal.Ingredients
	}
	if meal.EstimatedDeliveryTime != "" {
		updateObj["estimatedDeliveryTime"] = meal.EstimatedDeliveryTime
	}
	if meal.FoodImage != "" {
		updateObj["foodImage"] = meal.FoodImage
	}
	if len(updateObj) == 0 {
		respondError(w, http.StatusBadRequest, "No updatable fields supplied")
		return
	}

	result, err := mc.meals.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateObj})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Meal update failed")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "Meal not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Meal updated successfully",
	})
}

func (mc *MealController) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid meal ID format")
		return
	}

	result, err := mc.meals.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error deleting meal")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Meal not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Meal deleted successfully",
	})
}
