package httpserver

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maarten-vizzerz/comaker/internal/auth"
	"github.com/maarten-vizzerz/comaker/internal/historie"
	"github.com/maarten-vizzerz/comaker/internal/http/handlers"
	"github.com/maarten-vizzerz/comaker/internal/models"
	"github.com/maarten-vizzerz/comaker/internal/rbac"
)

func NewRouter(db *gorm.DB, svc *historie.Service, jwtSecret string) *gin.Engine {
	r := gin.Default()

	// Public routes
	r.POST("/api/v1/auth/login", handlers.LoginHandler(db, jwtSecret))
	r.GET("/logout", handlers.LogoutHandler())

	authMW := auth.JWT(db, jwtSecret)
	beheer := rbac.Require(models.RoleBeheerder)
	schrijvers := rbac.Require(models.RoleBeheerder, models.RoleProjectleider, models.RoleControleur, models.RoleAdministratief)

	api := r.Group("/api/v1", authMW)
	{
		api.GET("/me", handlers.MeHandler(db))
		api.GET("/me/taken", handlers.MijnTaken(db))

		// Users (beheer only)
		api.GET("/users", beheer, handlers.ListUsers(db))
		api.GET("/users/:id", beheer, handlers.GetUser(db))
		api.POST("/users", beheer, handlers.CreateUser(db))
		api.PUT("/users/:id", beheer, handlers.UpdateUser(db))
		api.DELETE("/users/:id", beheer, handlers.DeleteUser(db))

		// Vestigingen
		api.GET("/vestigingen", handlers.ListVestigingen(db))
		api.GET("/vestigingen/:id", handlers.GetVestiging(db))
		api.POST("/vestigingen", beheer, handlers.CreateVestiging(db))
		api.PUT("/vestigingen/:id", beheer, handlers.UpdateVestiging(db))
		api.DELETE("/vestigingen/:id", beheer, handlers.DeleteVestiging(db))

		// Leveranciers
		api.GET("/leveranciers", handlers.ListLeveranciers(db))
		api.GET("/leveranciers/:id", handlers.GetLeverancier(db))
		api.POST("/leveranciers", schrijvers, handlers.CreateLeverancier(db))
		api.PUT("/leveranciers/:id", schrijvers, handlers.UpdateLeverancier(db))
		api.DELETE("/leveranciers/:id", beheer, handlers.DeleteLeverancier(db))

		// Projecten
		api.GET("/projects", handlers.ListProjects(db))
		api.GET("/projects/:id", handlers.GetProject(db))
		api.POST("/projects", schrijvers, handlers.CreateProject(db))
		api.PUT("/projects/:id", schrijvers, handlers.UpdateProject(db))
		api.DELETE("/projects/:id", beheer, handlers.DeleteProject(db))

		// Projectfases (nested under a project)
		api.GET("/projects/:id/fases", handlers.ListProjectFases(db))
		api.POST("/projects/:id/fases", schrijvers, handlers.CreateProjectFase(db))
		api.GET("/fases/:id", handlers.GetProjectFase(db))
		api.PUT("/fases/:id", schrijvers, handlers.UpdateProjectFase(db))
		api.DELETE("/fases/:id", beheer, handlers.DeleteProjectFase(db))

		// Fase documenten
		api.GET("/fases/:id/documenten", handlers.ListFaseDocumenten(db))
		api.POST("/fases/:id/documenten", schrijvers, handlers.CreateFaseDocument(db))
		api.PUT("/documenten/:id", schrijvers, handlers.UpdateFaseDocument(db))
		api.DELETE("/documenten/:id", beheer, handlers.DeleteFaseDocument(db))

		// Fase commentaren (leveranciers may post in their own thread)
		api.GET("/fases/:id/commentaren", handlers.ListFaseCommentaren(db))
		api.POST("/fases/:id/commentaren", handlers.CreateFaseCommentaar(db))
		api.PUT("/commentaren/:id", handlers.UpdateFaseCommentaar(db))
		api.DELETE("/commentaren/:id", beheer, handlers.DeleteFaseCommentaar(db))

		// Contracten
		api.GET("/contracts", handlers.ListContracts(db))
		api.GET("/contracts/:id", handlers.GetContract(db))
		api.POST("/contracts", schrijvers, handlers.CreateContract(db))
		api.PUT("/contracts/:id", schrijvers, handlers.UpdateContract(db))
		api.POST("/contracts/:id/approve", rbac.Require(models.RoleBeheerder, models.RoleProjectleider), handlers.ApproveContract(db))
		api.DELETE("/contracts/:id", beheer, handlers.DeleteContract(db))

		// Proces templates (untracked configuration data)
		templateBeheer := rbac.Require(models.RoleBeheerder, models.RoleAdministratief)
		api.GET("/proces-templates", handlers.ListProcesTemplates(db))
		api.GET("/proces-templates/:id", handlers.GetProcesTemplate(db))
		api.POST("/proces-templates", templateBeheer, handlers.CreateProcesTemplate(db))
		api.PATCH("/proces-templates/:id", templateBeheer, handlers.UpdateProcesTemplate(db))
		api.DELETE("/proces-templates/:id", templateBeheer, handlers.DeleteProcesTemplate(db))
		api.POST("/proces-templates/:id/standaard", templateBeheer, handlers.SetStandaardProcesTemplate(db))

		// Historie
		hist := api.Group("/historie")
		{
			hist.GET("/:tabel/:record", handlers.RecordHistorie(svc))
			hist.GET("/:tabel/:record/versie/:versie", handlers.RecordVersie(svc))
			hist.GET("/:tabel/:record/compare", handlers.RecordCompare(svc))
			hist.POST("/:tabel/:record/restore/:versie", beheer, handlers.RestoreVersie(svc))

			hist.GET("/activiteit/gebruiker/:id", beheer, handlers.GebruikerActiviteit(svc))
			hist.GET("/activiteit/tabel/:tabel", beheer, handlers.TabelActiviteit(svc))
			hist.GET("/recent", beheer, handlers.RecenteWijzigingen(svc))
			hist.GET("/stats", beheer, handlers.HistorieStats(svc))
			hist.GET("/stats/:tabel", beheer, handlers.TabelStats(svc))
		}
	}

	return r
}
