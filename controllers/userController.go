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

type UserController struct {
	users    *mongo.Collection
	meals    *mongo.Collection
	validate *validator.Validate
}

func NewUserController(users, meals *mongo.Collection) *UserController {
	return &UserController{users: users, meals: meals, validate: validator.New()}
}

// SyncUser records a user on first sign-in. The identity provider already
// verified the email; repeat syncs return without inserting.
func (uc *UserController) SyncUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := uc.validate.Struct(user); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := uc.users.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error checking existing user")
		return
	}
	if count > 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "User already exists",
		})
		return
	}

	user.ID = primitive.NewObjectID()
	user.Role = models.RoleUser
	user.Status = models.UserStatusActive
	user.ChefID = ""
	user.CreatedAt = time.Now()

	result, err := uc.users.InsertOne(ctx, user)
	if err != nil {
		log.Error().Err(err).Msg("user insert failed")
		respondError(w, http.StatusInternalServerError, "User could not be created")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"insertedId": result.InsertedID,
		"message":    "User created successfully",
	})
}

func (uc *UserController) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := uc.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error retrieving users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding users")
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// GetUserRole is the public role probe the frontend gates its UI on.
// Unknown emails read as plain users rather than an error.
func (uc *UserController) GetUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	email := mux.Vars(r)["email"]

	var user models.User
	err := uc.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"role": models.RoleUser})
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "Error retrieving user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"role":   user.Role,
		"chefId": user.ChefID,
	})
}

// UpdateUserRole is the direct admin override next to the role-request
// workflow. Promotion only; this surface never demotes anyone.
func (uc *UserController) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Role != models.RoleChef && body.Role != models.RoleAdmin {
		respondError(w, http.StatusBadRequest, "role must be chef or admin")
		return
	}

	result, err := uc.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"role": body.Role},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update user role")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User role updated successfully",
	})
}

// MarkFraud flags a user and withdraws their meal listings from the
// catalog so a flagged chef stops selling immediately.
func (uc *UserController) MarkFraud(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	err = uc.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "Error retrieving user")
		return
	}

	_, err = uc.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": models.UserStatusFraud},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update user status")
		return
	}

	// A user document without an email owns no meal listings; skip the
	// withdrawal rather than matching meals with an empty owner.
	var mealsRemoved int64
	if user.Email != nil && *user.Email != "" {
		removed, err := uc.meals.DeleteMany(ctx, bson.M{"userEmail": user.Email})
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to withdraw user's meals")
			return
		}
		mealsRemoved = removed.DeletedCount
	}

	log.Info().
		Str("userId", user.ID.Hex()).
		Int64("mealsRemoved", mealsRemoved).
		Msg("user flagged as fraud")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "User flagged as fraud",
		"mealsRemoved": mealsRemoved,
	})
}
