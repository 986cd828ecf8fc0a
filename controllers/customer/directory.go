package customer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workerbuddy/workerbuddy-api/models"
	"github.com/workerbuddy/workerbuddy-api/redis"
	"github.com/workerbuddy/workerbuddy-api/utils"
)

type DirectoryController struct {
	DB *gorm.DB
}

func NewDirectoryController(db *gorm.DB) *DirectoryController {
	return &DirectoryController{DB: db}
}

const directoryCacheTTL = 60 * time.Second

type workerRow struct {
	ID             uint              `json:"id"`
	UserID         uint              `json:"userId"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	Skills         models.StringList `json:"skills"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"reviewCount"`
	Experience     string            `json:"experience"`
	Location       string            `json:"location"`
	Available      bool              `json:"available"`
	AvailableToday bool              `json:"availableToday"`
	Verified       bool              `json:"verified"`
	CompletedJobs  uint              `json:"completedJobs"`
	PricePerHour   float64           `json:"pricePerHour"`
	CreatedAt      time.Time         `json:"createdAt"`

	experienceYears int
	address         string
}

// ListWorkers is the worker directory: filter, sort and paginate worker
// listings. Rating, verified, availability and skill filters run against
// the store; location, free-text search and available-today are applied
// in memory after the fetch.
func (dc *DirectoryController) ListWorkers(c *fiber.Ctx) error {
	cacheKey := "workers:" + string(c.Request().URI().QueryString())
	if cached, ok := redis.GetCached(cacheKey); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	search := strings.ToLower(c.Query("search"))
	location := strings.ToLower(c.Query("location"))
	availability := c.Query("availability", "all")
	verifiedOnly := c.QueryBool("verified")
	minRating := c.QueryFloat("minRating")
	sortBy := c.Query("sortBy", "rating")

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}

	var skillTags []string
	if skills := c.Query("skills"); skills != "" {
		for _, tag := range strings.Split(skills, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				skillTags = append(skillTags, tag)
			}
		}
	}

	query := dc.DB.Preload("User").Preload("Reviews")
	if minRating > 0 {
		query = query.Where("rating >= ?", minRating)
	}
	if verifiedOnly {
		query = query.Where("verified = ?", true)
	}
	if availability == "available" || availability == "today" {
		query = query.Where("availability = ?", true)
	}
	if len(skillTags) > 0 {
		// Skills are stored as a JSON array in a text column, so tag
		// membership is matched on the quoted literal.
		conds := make([]string, 0, len(skillTags))
		args := make([]interface{}, 0, len(skillTags))
		for _, tag := range skillTags {
			conds = append(conds, "skills LIKE ?")
			args = append(args, fmt.Sprintf(`%%"%s"%%`, tag))
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	}

	var workers []models.Worker
	if err := query.Find(&workers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch workers",
			Error:   err.Error(),
		})
	}

	now := time.Now()
	rows := make([]workerRow, 0, len(workers))
	for i := range workers {
		row := buildWorkerRow(&workers[i], now)

		if availability == "today" && !row.AvailableToday {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(row.Location), location) &&
			!strings.Contains(strings.ToLower(row.address), location) {
			continue
		}
		if search != "" && !matchesSearch(&row, search) {
			continue
		}

		rows = append(rows, row)
	}

	sortWorkerRows(rows, sortBy)

	total := len(rows)
	offset := (page - 1) * limit
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	response := fiber.Map{
		"workers": rows[offset:end],
		"total":   total,
		"page":    page,
		"limit":   limit,
		"hasMore": end < total,
	}

	if payload, err := json.Marshal(response); err == nil {
		redis.SetCached(cacheKey, string(payload), directoryCacheTTL)
	}

	return c.JSON(response)
}

// GetWorkerDetails returns the merged worker and user record shown on the
// worker detail page, including the derived display fields.
func (dc *DirectoryController) GetWorkerDetails(c *fiber.Ctx) error {
	id := c.Params("id")

	var worker models.Worker
	if err := dc.DB.Preload("User").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		First(&worker, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Worker not found",
		})
	}

	now := time.Now()
	availableToday := worker.AvailableToday(now)

	reviews := make([]fiber.Map, 0, len(worker.Reviews))
	for _, review := range worker.Reviews {
		userName := review.Customer.Name
		if userName == "" {
			userName = "Anonymous"
		}
		reviews = append(reviews, fiber.Map{
			"userId":    review.CustomerID,
			"userName":  userName,
			"comment":   review.Comment,
			"rating":    review.Rating,
			"jobType":   review.JobType,
			"createdAt": review.CreatedAt,
		})
	}

	location := worker.User.Pincode
	if location == "" {
		location = "Not specified"
	}

	availabilityStatus := "busy"
	var todaySlots []string
	if availableToday {
		availabilityStatus = "available"
		day := worker.TimeSlots[models.WeekdayKey(now)]
		todaySlots = []string{fmt.Sprintf("%s - %s", day.StartTime, day.EndTime)}
	}

	responseTime := "< 15 mins"
	if worker.Rating > 4.5 {
		responseTime = "< 5 mins"
	}

	return c.JSON(fiber.Map{
		"success": true,
		"worker": fiber.Map{
			"id":                 worker.ID,
			"userId":             worker.UserID,
			"name":               worker.User.Name,
			"email":              worker.User.Email,
			"phone":              worker.User.Phone,
			"pincode":            worker.User.Pincode,
			"address":            worker.User.Address,
			"location":           location,
			"skills":             worker.Skills,
			"availability":       worker.Availability,
			"availableToday":     availableToday,
			"timeSlots":          worker.TimeSlots,
			"rating":             roundRating(worker.Rating),
			"reviewCount":        len(worker.Reviews),
			"reviews":            reviews,
			"verified":           worker.Verified,
			"completedJobs":      worker.CompletedJobs,
			"experience":         experienceLabel(worker.ExperienceYears()),
			"workHistory":        worker.WorkHistory,
			"availabilityStatus": availabilityStatus,
			"todaySlots":         todaySlots,
			"responseTime":       responseTime,
			"pricePerHour":       worker.PricePerHour,
			"createdAt":          worker.CreatedAt,
			"updatedAt":          worker.UpdatedAt,
		},
	})
}

func buildWorkerRow(worker *models.Worker, now time.Time) workerRow {
	category := ""
	if len(worker.Skills) > 0 {
		category = worker.Skills[0]
	}
	location := worker.User.Pincode
	if location == "" {
		location = "Unknown"
	}
	years := worker.ExperienceYears()

	return workerRow{
		ID:             worker.ID,
		UserID:         worker.UserID,
		Name:           worker.User.Name,
		Category:       category,
		Skills:         worker.Skills,
		Rating:         roundRating(worker.Rating),
		ReviewCount:    len(worker.Reviews),
		Experience:     experienceLabel(years),
		Location:       location,
		Available:      worker.Availability,
		AvailableToday: worker.AvailableToday(now),
		Verified:       worker.Verified,
		CompletedJobs:  worker.CompletedJobs,
		PricePerHour:   worker.PricePerHour,
		CreatedAt:      worker.CreatedAt,

		experienceYears: years,
		address:         worker.User.Address,
	}
}

func matchesSearch(row *workerRow, search string) bool {
	if strings.Contains(strings.ToLower(row.Name), search) ||
		strings.Contains(strings.ToLower(row.Location), search) ||
		strings.Contains(strings.ToLower(row.address), search) {
		return true
	}
	for _, skill := range row.Skills {
		if strings.Contains(strings.ToLower(skill), search) {
			return true
		}
	}
	return false
}

// sortWorkerRows orders the filtered rows by the requested key. Every key
// has an explicit tie-break so pagination stays stable.
func sortWorkerRows(rows []workerRow, sortBy string) {
	switch sortBy {
	case "name":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Name < rows[j].Name
		})
	case "newest":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		})
	case "completedJobs":
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].CompletedJobs != rows[j].CompletedJobs {
				return rows[i].CompletedJobs > rows[j].CompletedJobs
			}
			return rows[i].Rating > rows[j].Rating
		})
	case "availability":
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].AvailableToday != rows[j].AvailableToday {
				return rows[i].AvailableToday
			}
			return rows[i].Rating > rows[j].Rating
		})
	case "experience":
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].experienceYears != rows[j].experienceYears {
				return rows[i].experienceYears > rows[j].experienceYears
			}
			return rows[i].Rating > rows[j].Rating
		})
	default: // rating
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Rating != rows[j].Rating {
				return rows[i].Rating > rows[j].Rating
			}
			return rows[i].ReviewCount > rows[j].ReviewCount
		})
	}
}

func experienceLabel(years int) string {
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}

func roundRating(rating float64) float64 {
	return float64(int(rating*10+0.5)) / 10
}
