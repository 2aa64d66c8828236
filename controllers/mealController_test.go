package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreateMeal(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("valid meal created", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		mc := NewMealController(mt.Coll)
		body := `{"foodName":"Beef Tehari","chefName":"Naimul","price":25.99,"userEmail":"chef@x.com","ingredients":["beef","rice"]}`
		req := httptest.NewRequest(http.MethodPost, "/createMeals", strings.NewReader(body))

		rr := httptest.NewRecorder()
		mc.CreateMeal(rr, req)

		require.Equal(mt, http.StatusCreated, rr.Code)

		var resp map[string]interface{}
		require.NoError(mt, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(mt, resp["insertedId"])
	})

	mt.Run("negative price rejected", func(mt *mtest.T) {
		mc := NewMealController(mt.Coll)
		body := `{"foodName":"Beef Tehari","chefName":"Naimul","price":-1,"userEmail":"chef@x.com"}`
		req := httptest.NewRequest(http.MethodPost, "/createMeals", strings.NewReader(body))

		rr := httptest.NewRecorder()
		mc.CreateMeal(rr, req)

		assert.Equal(mt, http.StatusBadRequest, rr.Code)
	})

	mt.Run("missing owner email rejected", func(mt *mtest.T) {
		mc := NewMealController(mt.Coll)
		body := `{"foodName":"Beef Tehari","chefName":"Naimul","price":10}`
		req := httptest.NewRequest(http.MethodPost, "/createMeals", strings.NewReader(body))

		rr := httptest.NewRecorder()
		mc.CreateMeal(rr, req)

		assert.Equal(mt, http.StatusBadRequest, rr.Code)
	})
}

func TestGetMeal(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("invalid id format is 400", func(mt *mtest.T) {
		mc := NewMealController(mt.Coll)
		router := mux.NewRouter()
		router.HandleFunc("/createMeals/{id}", mc.GetMeal).Methods(http.MethodGet)

		req := httptest.NewRequest(http.MethodGet, "/createMeals/not-an-id", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(mt, http.StatusBadRequest, rr.Code)
	})

	mt.Run("unknown meal is 404", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.createMeals", mtest.FirstBatch))

		mc := NewMealController(mt.Coll)
		router := mux.NewRouter()
		router.HandleFunc("/createMeals/{id}", mc.GetMeal).Methods(http.MethodGet)

		req := httptest.NewRequest(http.MethodGet, "/createMeals/"+primitive.NewObjectID().Hex(), nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(mt, http.StatusNotFound, rr.Code)
	})
}

func TestGetMeals_OwnerFilter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("owner filter applied", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, "db.createMeals", mtest.FirstBatch, bson.D{
			{Key: "foodName", Value: "Beef Tehari"},
			{Key: "userEmail", Value: "chef@x.com"},
		})
		second := mtest.CreateCursorResponse(0, "db.createMeals", mtest.NextBatch)
		mt.AddMockResponses(first, second)

		mc := NewMealController(mt.Coll)
		req := httptest.NewRequest(http.MethodGet, "/createMeals?email=chef@x.com", nil)

		rr := httptest.NewRecorder()
		mc.GetMeals(rr, req)

		require.Equal(mt, http.StatusOK, rr.Code)

		var meals []map[string]interface{}
		require.NoError(mt, json.Unmarshal(rr.Body.Bytes(), &meals))
		require.Len(mt, meals, 1)
		assert.Equal(mt, "chef@x.com", meals[0]["userEmail"])
	})
}
