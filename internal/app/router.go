package app

import (
	"rhello_flow_backend/internal/config"
	"rhello_flow_backend/internal/middleware"
	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/pkg/monitoring"

	"rhello_flow_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/health", c.health.Check)
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	api := router.Group("/api")

	// rotas públicas: login, registro e o teste externo do candidato
	api.POST("/auth/register", c.auth.Register)
	api.POST("/auth/login", c.auth.Login)
	api.GET("/external-tests/:token", c.externalTest.Get)
	api.POST("/external-tests/:token/submit", c.externalTest.Submit)

	// rotas autenticadas, qualquer papel
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	authed.Use(middleware.ActivityMiddleware(repos.user))
	{
		authed.GET("/me", c.auth.Me)

		authed.GET("/vagas", c.vaga.List)
		authed.GET("/vagas/:id", c.vaga.Get)
		authed.GET("/vagas/:id/report", c.vaga.Report)
		authed.GET("/vagas/:id/scorecards", c.scorecard.ListByVaga)

		authed.GET("/candidates", c.candidate.List)
		authed.GET("/candidates/:id", c.candidate.Get)
		authed.GET("/candidates/:id/cv", c.candidate.CVURL)
		authed.GET("/candidates/:id/scorecards", c.scorecard.ListByCandidate)

		authed.GET("/templates", c.template.List)
		authed.GET("/templates/:id", c.template.Get)

		authed.GET("/scorecards/:id", c.scorecard.Get)
	}

	// escrita restrita a recrutadores e administradores
	staff := api.Group("")
	staff.Use(middleware.AuthMiddleware(cfg))
	staff.Use(middleware.RoleMiddleware(model.Admin, model.Recruiter))
	staff.Use(middleware.ActivityMiddleware(repos.user))
	{
		staff.POST("/vagas", c.vaga.Create)
		staff.PUT("/vagas/:id", c.vaga.Update)
		staff.PUT("/vagas/:id/status", c.vaga.UpdateStatus)
		staff.DELETE("/vagas/:id", c.vaga.Delete)

		staff.POST("/candidates", c.candidate.Create)
		staff.PUT("/candidates/:id", c.candidate.Update)
		staff.DELETE("/candidates/:id", c.candidate.Delete)
		staff.POST("/candidates/:id/cv", c.candidate.UploadCV)

		staff.POST("/templates", c.template.Create)
		staff.PUT("/templates/:id", c.template.Update)
		staff.PUT("/templates/:id/active", c.template.SetActive)
		staff.DELETE("/templates/:id", c.template.Delete)

		staff.POST("/scorecards", c.scorecard.Submit)
		staff.DELETE("/scorecards/:id", c.scorecard.Delete)

		staff.POST("/external-tests", c.scorecard.IssueTest)
		staff.POST("/answers/:id/grade", c.scorecard.GradeAnswer)
	}

	// administração de usuários
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.List)
		admin.PUT("/users/:id", c.user.Update)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
	}
}
