package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/handler"
)

// Options carries the router settings that do not belong to any handler
type Options struct {
	// AllowOrigin is the single browser origin allowed to make credentialed
	// requests. Wildcards are not usable here: the session cookie only
	// travels when the origin is echoed back exactly.
	AllowOrigin string
}

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, opts Options) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{opts.AllowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// Banner and health check endpoints
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "hire vibe server is running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "hire-vibe-api",
		})
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(deps)
	jobHandler := handler.NewJobHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)
	protect := deps.Auth.Protect()

	// Session routes
	r.POST("/jwt", authHandler.IssueToken)
	r.GET("/logout", authHandler.Logout)

	// Job routes
	jobs := r.Group("/jobs")
	{
		// GET /jobs - List jobs with optional job_type and search filters
		jobs.GET("", jobHandler.ListJobs)

		// GET /jobs/:id - Get job details
		jobs.GET("/:id", jobHandler.GetJob)

		// GET /jobs/get-mine/:email - List the caller's own postings
		jobs.GET("/get-mine/:email", protect, jobHandler.ListMine)

		// POST /jobs - Create a new job
		jobs.POST("", protect, jobHandler.CreateJob)

		// PUT /jobs/:id - Replace a job, inserting when absent
		jobs.PUT("/:id", protect, jobHandler.UpdateJob)

		// DELETE /jobs/:id - Delete a job and its applications
		jobs.DELETE("/:id", protect, jobHandler.DeleteJob)
	}

	// Application routes
	r.POST("/applications", protect, applicationHandler.Apply)
	r.GET("/applications/:email", protect, applicationHandler.ListApplications)
	r.GET("/appliedJob/:id", protect, applicationHandler.GetApplication)

	return r
}
