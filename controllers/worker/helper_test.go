package worker

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

// setupApp wires the worker-facing routes the same way the route setup
// does, against an in-memory database.
func setupApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Setenv("JWT_SECRET", testSecret)

	app := fiber.New()

	profileController := NewProfileController(db)
	bookingController := NewBookingController(db)
	reviewController := NewReviewController(db)

	workerGroup := app.Group("/worker", middleware.Protected())
	workerGroup.Get("/profile", middleware.RequireUserType(models.TypeWorker), profileController.GetWorkerProfile)
	workerGroup.Patch("/profile", middleware.RequireUserType(models.TypeWorker), profileController.UpdateWorkerProfile)
	workerGroup.Get("/bookings", middleware.RequireUserType(models.TypeWorker), bookingController.GetBookings)
	workerGroup.Patch("/bookings/:id", middleware.RequireUserType(models.TypeWorker), bookingController.UpdateBookingStatus)
	workerGroup.Get("/reviews", middleware.RequireUserType(models.TypeWorker), reviewController.GetReviews)

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

func createWorkerProfile(t *testing.T, db *gorm.DB, userID uint) models.Worker {
	worker := models.NewDefaultWorker(userID)
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
