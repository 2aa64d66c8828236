package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/km-naimul/b12-a11-localchefbazaar-server-side/controllers"
)

// PublicRoutes carries everything reachable without a bearer token.
func PublicRoutes(
	router *mux.Router,
	ac *controller.AuthController,
	mc *controller.MealController,
	rvc *controller.ReviewController,
	fc *controller.FavoriteController,
	oc *controller.OrderController,
	pc *controller.PaymentController,
	uc *controller.UserController,
) {
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("LocalChefBazaar server is running"))
	}).Methods(http.MethodGet)

	router.HandleFunc("/jwt", ac.IssueToken).Methods(http.MethodPost)

	router.HandleFunc("/createMeals", mc.GetMeals).Methods(http.MethodGet)
	router.HandleFunc("/createMeals", mc.CreateMeal).Methods(http.MethodPost)
	router.HandleFunc("/createMeals/{id}", mc.GetMeal).Methods(http.MethodGet)
	router.HandleFunc("/createMeals/{id}", mc.UpdateMeal).Methods(http.MethodPut)
	router.HandleFunc("/createMeals/{id}", mc.DeleteMeal).Methods(http.MethodDelete)

	router.HandleFunc("/reviews", rvc.GetReviews).Methods(http.MethodGet)
	router.HandleFunc("/reviews", rvc.CreateReview).Methods(http.MethodPost)

	router.HandleFunc("/favorites", fc.GetFavorite).Methods(http.MethodGet)
	router.HandleFunc("/favorites", fc.AddFavorite).Methods(http.MethodPost)

	router.HandleFunc("/orders", oc.GetOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders", oc.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders/{id}", oc.GetOrderByID).Methods(http.MethodGet)

	router.HandleFunc("/create-checkout-session", pc.CreateCheckoutSession).Methods(http.MethodPost)
	router.HandleFunc("/payment-success", pc.PaymentSuccess).Methods(http.MethodPatch)

	router.HandleFunc("/users", uc.SyncUser).Methods(http.MethodPost)
	router.HandleFunc("/users/{email}/role", uc.GetUserRole).Methods(http.MethodGet)
}

// ProtectedRoutes requires a verified principal (Authentication middleware).
func ProtectedRoutes(
	router *mux.Router,
	oc *controller.OrderController,
	pc *controller.PaymentController,
	rrc *controller.RoleRequestController,
) {
	router.HandleFunc("/orders/{id}", oc.UpdateOrderStatus).Methods(http.MethodPatch)
	router.HandleFunc("/payments", pc.GetPayments).Methods(http.MethodGet)
	router.HandleFunc("/role-requests", rrc.SubmitRequest).Methods(http.MethodPost)
}

// AdminRoutes additionally requires the admin role (AdminOnly middleware).
func AdminRoutes(
	router *mux.Router,
	rrc *controller.RoleRequestController,
	uc *controller.UserController,
) {
	router.HandleFunc("/role-requests", rrc.GetRequests).Methods(http.MethodGet)
	router.HandleFunc("/role-requests/{id}", rrc.DecideRequest).Methods(http.MethodPatch)

	router.HandleFunc("/users", uc.GetUsers).Methods(http.MethodGet)
	router.HandleFunc("/users/fraud/{id}", uc.MarkFraud).Methods(http.MethodPatch)
	router.HandleFunc("/users/{id}/role", uc.UpdateUserRole).Methods(http.MethodPatch)
}
