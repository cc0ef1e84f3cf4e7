package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eurouni/eurostudy/internal/api/handlers"
	"github.com/eurouni/eurostudy/internal/api/middleware"
)

type Deps struct {
	Auth    *handlers.AuthHandler
	Resume  *handlers.ResumeHandler
	Editor  *handlers.EditorHandler
	Profile *handlers.ProfileHandler
	Advisor *handlers.AdvisorHandler
	Visa    *handlers.VisaHandler
	Admin   *handlers.AdminHandler
	WS      *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/auth/register", d.Auth.Register)
	r.POST("/auth/login", d.Auth.Login)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.GET("/resumes", d.Resume.List)
	auth.POST("/resumes", d.Resume.Create)
	auth.GET("/resumes/:id", d.Resume.Get)
	auth.PATCH("/resumes/:id", d.Resume.Update)
	auth.DELETE("/resumes/:id", d.Resume.Delete)

	auth.POST("/resumes/:id/education", d.Resume.AddEducation)
	auth.PUT("/resumes/:id/education/:entryID", d.Resume.UpdateEducation)
	auth.DELETE("/resumes/:id/education/:entryID", d.Resume.DeleteEducation)

	auth.POST("/resumes/:id/experience", d.Resume.AddExperience)
	auth.PUT("/resumes/:id/experience/:entryID", d.Resume.UpdateExperience)
	auth.DELETE("/resumes/:id/experience/:entryID", d.Resume.DeleteExperience)

	auth.POST("/resumes/:id/languages", d.Resume.AddLanguage)
	auth.PUT("/resumes/:id/languages/:entryID", d.Resume.UpdateLanguage)
	auth.DELETE("/resumes/:id/languages/:entryID", d.Resume.DeleteLanguage)

	auth.POST("/resumes/:id/certifications", d.Resume.AddCertification)
	auth.PUT("/resumes/:id/certifications/:entryID", d.Resume.UpdateCertification)
	auth.DELETE("/resumes/:id/certifications/:entryID", d.Resume.DeleteCertification)

	auth.POST("/resumes/:id/projects", d.Resume.AddProject)
	auth.PUT("/resumes/:id/projects/:entryID", d.Resume.UpdateProject)
	auth.DELETE("/resumes/:id/projects/:entryID", d.Resume.DeleteProject)

	auth.POST("/resumes/:id/skills/:type", d.Resume.AddSkill)
	auth.DELETE("/resumes/:id/skills/:type/:skill", d.Resume.RemoveSkill)

	auth.GET("/resumes/:id/preview", d.Resume.Preview)
	auth.GET("/resumes/:id/export.pdf", d.Resume.ExportPDF)

	auth.POST("/resumes/:id/ai/summary", d.Resume.GenerateSummary)
	auth.POST("/resumes/:id/ai/suggestions", d.Resume.AISuggestions)
	auth.POST("/resumes/:id/ai/skill-gap", d.Resume.SkillGapAnalysis)

	auth.POST("/editor/:id/start", d.Editor.Start)
	auth.POST("/editor/:id/section", d.Editor.ApplySection)
	auth.POST("/editor/:id/save", d.Editor.Save)
	auth.GET("/editor/:id/status", d.Editor.Status)
	auth.POST("/editor/:id/close", d.Editor.Close)

	auth.GET("/profile/me", d.Profile.Me)
	auth.PUT("/profile/update", d.Profile.Update)

	auth.POST("/advisor/predict", d.Advisor.Predict)
	auth.POST("/advisor/recommend", d.Advisor.Recommend)
	auth.POST("/advisor/cost-analysis", d.Advisor.CostAnalysis)
	auth.POST("/advisor/scholarships", d.Advisor.Scholarships)
	auth.POST("/advisor/find-affordable", d.Advisor.FindAffordable)
	auth.POST("/advisor/query", d.Advisor.Query)
	auth.POST("/advisor/sop", d.Advisor.GenerateSOP)
	auth.GET("/advisor/universities", d.Advisor.Universities)
	auth.GET("/advisor/scholarships-list", d.Advisor.ScholarshipList)
	auth.GET("/advisor/scholarships-by-country/:country", d.Advisor.ScholarshipsByCountry)
	auth.GET("/advisor/scholarships-statistics", d.Advisor.ScholarshipStatistics)
	auth.GET("/advisor/scholarships-filter", d.Advisor.FilterScholarships)

	auth.GET("/visa/countries", d.Visa.Countries)
	auth.GET("/visa/requirements/:country", d.Visa.Requirements)
	auth.GET("/visa/progress/:country", d.Visa.Progress)
	auth.PUT("/visa/progress/:country/items/:item_id", d.Visa.SetChecked)

	// WebSocket
	auth.GET("/ws/editor/:id", d.WS.PreviewWS)

	// Support-staff lookups
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/profiles/:user_id", d.Admin.GetProfile)
	admin.GET("/users/:user_id/resumes", d.Admin.ListResumes)
}
