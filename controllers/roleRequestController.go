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

	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/helper"
	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/models"
)

type RoleRequestController struct {
	requests *mongo.Collection
	users    *mongo.Collection
	validate *validator.Validate
}

func NewRoleRequestController(requests, users *mongo.Collection) *RoleRequestController {
	return &RoleRequestController{requests: requests, users: users, validate: validator.New()}
}

// SubmitRequest records a promotion ask with status pending. Repeat
// submissions are allowed and simply accumulate; the admin dashboard is
// where they get resolved.
func (rc *RoleRequestController) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var request models.RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := rc.validate.Struct(request); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	request.ID = primitive.NewObjectID()
	request.Status = models.RequestStatusPending
	request.RequestedAt = time.Now()
	request.DecidedAt = nil

	result, err := rc.requests.InsertOne(ctx, request)
	if err != nil {
		log.Error().Err(err).Msg("role request insert failed")
		respondError(w, http.StatusInternalServerError, "Role request could not be submitted")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"insertedId": result.InsertedID,
		"message":    "Role request submitted",
	})
}

// GetRequests lists role requests newest-first, optionally by status.
func (rc *RoleRequestController) GetRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "requestedAt", Value: -1}})
	cursor, err := rc.requests.Find(ctx, filter, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error retrieving role requests")
		return
	}
	defer cursor.Close(ctx)

	requests := []models.RoleRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding role requests")
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

// DecideRequest stores the admin's decision and, on approval, promotes the
// requester: chef requests mint a chef id alongside the role, admin
// requests set the role only (an earlier chefId is left in place).
func (rc *RoleRequestController) DecideRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request ID format")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		respondError(w, http.StatusBadRequest, "status is required")
		return
	}

	var request models.RoleRequest
	err = rc.requests.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(w, http.StatusNotFound, "Role request not found")
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "Error retrieving role request")
		return
	}

	now := time.Now()
	_, err = rc.requests.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": body.Status, "decidedAt": now},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update role request")
		return
	}

	if body.Status == models.RequestStatusApproved {
		if err := rc.promote(ctx, &request); err != nil {
			log.Error().Err(err).Str("requestId", request.ID.Hex()).Msg("role promotion failed")
			respondError(w, http.StatusInternalServerError, "Failed to update user role")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (rc *RoleRequestController) promote(ctx context.Context, request *models.RoleRequest) error {
	// Stored documents are not guaranteed to carry every field; a request
	// written outside the validated submit path must not panic the decide
	// handler.
	if request.RequestType == nil || request.UserEmail == nil {
		return errors.New("role request is missing requestType or userEmail")
	}

	updateObj := bson.M{}
	switch *request.RequestType {
	case models.RequestTypeChef:
		updateObj["role"] = models.RoleChef
		updateObj["chefId"] = helper.GenerateChefID()
	case models.RequestTypeAdmin:
		updateObj["role"] = models.RoleAdmin
	default:
		return errors.New("unknown request type: " + *request.RequestType)
	}

	_, err := rc.users.UpdateOne(ctx, bson.M{"email": request.UserEmail}, bson.M{"$set": updateObj})
	return err
}
