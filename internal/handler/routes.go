package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/internal/middleware"
	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth         *AuthHandler
	Registration *RegistrationHandler
	Learner      *LearnerHandler
	Staff        *StaffHandler
	Mark         *MarkHandler
	Attendance   *AttendanceHandler
	Timetable    *TimetableHandler
	Fee          *FeeHandler
	Notice       *NoticeHandler
	Library      *LibraryHandler
	Report       *ReportHandler
	Stats        *StatsHandler
	Grade        *GradeHandler
}

// RegisterRoutes mounts the portal API under prefix. Login and
// registration are open; everything else requires a token, with
// mutations gated by role. The master account passes every gate.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)

	api.POST("/staff/login", h.Auth.LoginStaff)
	api.POST("/learner/login", h.Auth.LoginLearner)
	api.POST("/master/login", h.Auth.LoginMaster)
	api.POST("/staff/register", h.Registration.RegisterStaff)
	api.POST("/learner/register", h.Registration.RegisterLearner)
	api.GET("/grades", h.Grade.List)

	protected := api.Group("")
	protected.Use(middleware.JWT(auth))

	protected.GET("/me", h.Auth.Me)
	protected.POST("/logout", h.Auth.Logout)

	staffOnly := middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	protected.GET("/learners", staffOnly, h.Learner.List)
	protected.GET("/learners/:id", h.Learner.Get)
	protected.POST("/learner/approve", adminOnly, h.Learner.Approve)

	protected.GET("/staff", staffOnly, h.Staff.List)
	protected.GET("/staff/:id", h.Staff.Get)
	protected.POST("/staff", adminOnly, h.Staff.Create)
	protected.PUT("/staff/:id", adminOnly, h.Staff.Update)
	protected.DELETE("/staff/:id", adminOnly, h.Staff.Delete)

	protected.POST("/marks", staffOnly, h.Mark.Enter)
	protected.GET("/marks", h.Mark.List)
	protected.DELETE("/marks/:id", staffOnly, h.Mark.Delete)

	protected.POST("/attendance", staffOnly, h.Attendance.Submit)
	protected.GET("/attendance", h.Attendance.List)

	protected.POST("/timetable", adminOnly, h.Timetable.Add)
	protected.GET("/timetable", h.Timetable.List)
	protected.DELETE("/timetable/:id", adminOnly, h.Timetable.Delete)

	protected.POST("/fees", adminOnly, h.Fee.Assess)
	protected.GET("/fees", h.Fee.List)
	protected.POST("/fee-payments", adminOnly, h.Fee.RecordPayment)
	protected.GET("/fee-payments", h.Fee.ListPayments)

	protected.POST("/notices", staffOnly, h.Notice.Post)
	protected.GET("/notices", h.Notice.List)
	protected.DELETE("/notices/:id", adminOnly, h.Notice.Delete)

	protected.POST("/textbooks", adminOnly, h.Library.AddTextbook)
	protected.GET("/textbooks", h.Library.ListTextbooks)
	protected.POST("/book-issues", staffOnly, h.Library.Issue)
	protected.PUT("/book-issues/:id/return", staffOnly, h.Library.Return)
	protected.GET("/book-issues", h.Library.ListIssues)

	protected.GET("/report/:id", h.Report.Get)
	protected.GET("/report/:id/pdf", h.Report.PDF)

	protected.GET("/stats", staffOnly, h.Stats.Snapshot)
}
