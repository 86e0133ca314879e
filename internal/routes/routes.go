package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/attendance"
	"github.com/famsdev/fams_backend/internal/config"
	"github.com/famsdev/fams_backend/internal/controllers"
	"github.com/famsdev/fams_backend/internal/database"
	"github.com/famsdev/fams_backend/internal/middleware"
	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/services"
	"github.com/famsdev/fams_backend/internal/syncengine"
	"github.com/famsdev/fams_backend/internal/ws"
)

// Deps is everything the HTTP surface needs, wired once in main.
type Deps struct {
	Cfg      *config.Config
	Registry *services.Registry
	Stores   *database.Stores
	Engine   *syncengine.Engine
	Machine  *attendance.Machine
	Hub      *ws.LiveHub
	Log      zerolog.Logger
}

func Register(r *gin.Engine, d Deps) {
	expiresIn := time.Duration(d.Cfg.AccessTokenTTLMinutes) * time.Minute

	authCtrl := &controllers.AuthController{Users: d.Registry.Users, JWTSecret: d.Cfg.JWTSecret, ExpiresIn: expiresIn}
	adminCtrl := &controllers.AdminController{Users: d.Registry.Users}
	lookupCtrl := &controllers.LookupController{
		Colleges:  d.Registry.Colleges,
		Courses:   d.Registry.Courses,
		Sections:  d.Registry.Sections,
		Rooms:     d.Registry.Rooms,
		Semesters: d.Registry.Semesters,
	}
	scheduleCtrl := &controllers.ScheduleController{
		Schedules: d.Registry.Schedules,
		Store:     d.Stores.Active,
		Engine:    d.Engine,
		Log:       d.Log,
	}
	logCtrl := &controllers.LogController{Logs: d.Registry.Logs}
	recogCtrl := &controllers.RecognitionController{Machine: d.Machine, Schedules: d.Registry.Schedules, Hub: d.Hub}
	syncCtrl := &controllers.SyncController{Engine: d.Engine, Local: d.Stores.Local}

	// Public
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", authCtrl.Login)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Protected
	authMW := middleware.AuthMiddleware(d.Registry.Users, middleware.AuthConfig{
		JWTSecret:    d.Cfg.JWTSecret,
		JWTExpiresIn: expiresIn,
	})
	api := r.Group("/api/v1", authMW)
	{
		api.GET("/auth/me", authCtrl.Me)
		api.POST("/auth/logout", authCtrl.Logout)

		// Admin-only
		admin := api.Group("/admin", middleware.RequireRoles(models.RoleSuperAdmin))
		{
			admin.GET("/users", adminCtrl.ListUsers)
			admin.POST("/users", adminCtrl.CreateUser)
			admin.GET("/users/:user_id", adminCtrl.GetUser)
			admin.PUT("/users/:user_id", adminCtrl.UpdateUser)
			admin.POST("/users/:user_id/status", adminCtrl.SetUserStatus)
			admin.DELETE("/users/:user_id", adminCtrl.DeleteUser)

			admin.POST("/colleges", lookupCtrl.CreateCollege)
			admin.PUT("/colleges/:id", lookupCtrl.UpdateCollege)
			admin.DELETE("/colleges/:id", lookupCtrl.DeleteCollege)

			admin.POST("/courses", lookupCtrl.CreateCourse)
			admin.PUT("/courses/:id", lookupCtrl.UpdateCourse)
			admin.DELETE("/courses/:id", lookupCtrl.DeleteCourse)

			admin.POST("/sections", lookupCtrl.CreateSection)
			admin.DELETE("/sections/:id", lookupCtrl.DeleteSection)

			admin.POST("/rooms", lookupCtrl.CreateRoom)
			admin.PUT("/rooms/:id", lookupCtrl.UpdateRoom)
			admin.DELETE("/rooms/:id", lookupCtrl.DeleteRoom)

			admin.POST("/semesters", lookupCtrl.CreateSemester)
			admin.POST("/semesters/:id/activate", lookupCtrl.ActivateSemester)
			admin.DELETE("/semesters/:id", lookupCtrl.DeleteSemester)

			// Sync flows
			admin.POST("/sync/hydrate", syncCtrl.Hydrate)
			admin.POST("/sync/flush-logs", syncCtrl.FlushLogs)
			admin.POST("/sync/flush-changes", syncCtrl.FlushChanges)
			admin.POST("/sync/purge-logs", syncCtrl.PurgeLogs)
			admin.GET("/sync/status", syncCtrl.Status)
		}

		// Management area: deans and program chairs (and superadmin)
		manage := api.Group("", middleware.RequireRoles(models.RoleDean, models.RoleProgramChairperson))
		{
			manage.GET("/colleges", lookupCtrl.ListColleges)
			manage.GET("/colleges/:id", lookupCtrl.GetCollege)
			manage.GET("/courses", lookupCtrl.ListCourses)
			manage.GET("/courses/:id", lookupCtrl.GetCourse)
			manage.GET("/sections", lookupCtrl.ListSections)
			manage.GET("/rooms", lookupCtrl.ListRooms)
			manage.GET("/semesters", lookupCtrl.ListSemesters)
			manage.GET("/semesters/active", lookupCtrl.GetActiveSemester)

			manage.GET("/schedules", scheduleCtrl.List)
			manage.POST("/schedules", scheduleCtrl.Create)
			manage.GET("/schedules/:id", scheduleCtrl.Get)
			manage.PUT("/schedules/:id", scheduleCtrl.Update)
			manage.DELETE("/schedules/:id", scheduleCtrl.Delete)
			manage.POST("/schedules/replace", scheduleCtrl.Replace)

			manage.GET("/logs", logCtrl.List)
			manage.GET("/logs/:id", logCtrl.Get)
			manage.POST("/logs/:id/status", logCtrl.OverrideStatus)
			manage.DELETE("/logs/:id", logCtrl.Delete)

			// Live attendance feed for dashboards
			manage.GET("/ws/live", ws.LiveHandler(d.Hub))
		}

		// Recognition client
		recog := api.Group("/recognition")
		{
			recog.POST("/time-in", recogCtrl.TimeIn)
			recog.POST("/time-out", recogCtrl.TimeOut)
			recog.POST("/unscheduled", recogCtrl.Unscheduled)
			recog.POST("/resolve", recogCtrl.Resolve)
			recog.GET("/schedules", recogCtrl.ListSchedules)
		}
	}
}
