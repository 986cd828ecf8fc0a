package customer

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/workerbuddy/workerbuddy-api/middleware"
	"github.com/workerbuddy/workerbuddy-api/models"
)

const testSecret = "test-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Worker{}, &models.Booking{}, &models.Review{}))
	return db
}

// setupApp wires the customer-facing routes the same way the route setup
// does, against an in-memory database.
func setupApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Setenv("JWT_SECRET", testSecret)

	app := fiber.New()

	bookingController := NewBookingController(db)
	reviewController := NewReviewController(db)
	profileController := NewProfileController(db)
	directoryController := NewDirectoryController(db)

	bookings := app.Group("/bookings", middleware.Protected(), middleware.RequireUserType(models.TypeUser))
	bookings.Post("/", bookingController.CreateBooking)
	bookings.Get("/", bookingController.GetBookings)
	bookings.Patch("/", bookingController.UpdateBooking)

	reviews := app.Group("/reviews", middleware.Protected())
	reviews.Get("/", reviewController.GetReviews)
	reviews.Post("/", middleware.RequireUserType(models.TypeUser), reviewController.CreateReview)
	reviews.Put("/", middleware.RequireUserType(models.TypeUser), reviewController.UpdateReview)

	profile := app.Group("/profile", middleware.Protected())
	profile.Get("/", profileController.GetProfile)
	profile.Patch("/", profileController.UpdateProfile)

	app.Get("/workers", middleware.Protected(), directoryController.ListWorkers)
	app.Get("/worker/:id", middleware.Protected(), directoryController.GetWorkerDetails)

	return app
}

func createUser(t *testing.T, db *gorm.DB, name, email string, userType models.UserType) models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		UserType: userType,
		Pincode:  "400001",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createWorker(t *testing.T, db *gorm.DB, userID uint, mutate func(*models.Worker)) models.Worker {
	worker := models.NewDefaultWorker(userID)
	if mutate != nil {
		mutate(&worker)
	}
	require.NoError(t, db.Create(&worker).Error)
	return worker
}

func signToken(t *testing.T, user models.User) string {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"userType": string(user.UserType),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
