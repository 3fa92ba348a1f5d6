package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maarten-vizzerz/comaker/internal/historie"
	"github.com/maarten-vizzerz/comaker/internal/models"
)

func ListProjects(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&models.Project{})
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if vestiging := c.Query("vestiging_id"); vestiging != "" {
			q = q.Where("vestiging_id = ?", vestiging)
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		var projects []models.Project
		if err := q.Order("project_nummer ASC").Limit(limit).Offset(offset).Find(&projects).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects})
	}
}

func GetProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var project models.Project
		if err := db.First(&project, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "project niet gevonden"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"project":           project,
			"budget_percentage": project.BudgetPercentage(),
		})
	}
}

func CreateProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ProjectNummer   string     `json:"project_nummer" binding:"required"`
			Naam            string     `json:"naam" binding:"required"`
			Beschrijving    *string    `json:"beschrijving"`
			Status          string     `json:"status"`
			BudgetTotaal    *int       `json:"budget_totaal"`
			BudgetBesteed   *int       `json:"budget_besteed"`
			StartDatum      *time.Time `json:"start_datum"`
			EindDatum       *time.Time `json:"eind_datum"`
			ProjectleiderID *string    `json:"projectleider_id"`
			VestigingID     *string    `json:"vestiging_id"`
			Opmerkingen     *string    `json:"opmerkingen"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status := models.ProjectConcept
		if input.Status != "" {
			status = models.ProjectStatus(input.Status)
		}
		project := models.Project{
			ID:              uuid.NewString(),
			ProjectNummer:   input.ProjectNummer,
			Naam:            input.Naam,
			Beschrijving:    input.Beschrijving,
			Status:          status,
			BudgetTotaal:    input.BudgetTotaal,
			BudgetBesteed:   input.BudgetBesteed,
			StartDatum:      input.StartDatum,
			EindDatum:       input.EindDatum,
			ProjectleiderID: input.ProjectleiderID,
			VestigingID:     input.VestigingID,
			Opmerkingen:     input.Opmerkingen,
		}

		ctx := historie.WithNote(c.Request.Context(), "Project aangemaakt via API")
		if err := db.WithContext(ctx).Create(&project).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"project": project})
	}
}

func UpdateProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var project models.Project
		if err := db.First(&project, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "project niet gevonden"})
			return
		}

		var input struct {
			Naam            *string    `json:"naam"`
			Beschrijving    *string    `json:"beschrijving"`
			Status          *string    `json:"status"`
			BudgetTotaal    *int       `json:"budget_totaal"`
			BudgetBesteed   *int       `json:"budget_besteed"`
			StartDatum      *time.Time `json:"start_datum"`
			EindDatum       *time.Time `json:"eind_datum"`
			ProjectleiderID *string    `json:"projectleider_id"`
			VestigingID     *string    `json:"vestiging_id"`
			Opmerkingen     *string    `json:"opmerkingen"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Naam != nil {
			project.Naam = *input.Naam
		}
		if input.Beschrijving != nil {
			project.Beschrijving = input.Beschrijving
		}
		if input.Status != nil {
			project.Status = models.ProjectStatus(*input.Status)
		}
		if input.BudgetTotaal != nil {
			project.BudgetTotaal = input.BudgetTotaal
		}
		if input.BudgetBesteed != nil {
			project.BudgetBesteed = input.BudgetBesteed
		}
		if input.StartDatum != nil {
			project.StartDatum = input.StartDatum
		}
		if input.EindDatum != nil {
			project.EindDatum = input.EindDatum
		}
		if input.ProjectleiderID != nil {
			project.ProjectleiderID = input.ProjectleiderID
		}
		if input.VestigingID != nil {
			project.VestigingID = input.VestigingID
		}
		if input.Opmerkingen != nil {
			project.Opmerkingen = input.Opmerkingen
		}

		ctx := historie.WithNote(c.Request.Context(), "Project bijgewerkt via API")
		if err := db.WithContext(ctx).Save(&project).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"project": project})
	}
}

func DeleteProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var project models.Project
		if err := db.First(&project, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "project niet gevonden"})
			return
		}

		// A project with fases cannot be removed silently.
		var fases int64
		if err := db.Model(&models.ProjectFase{}).Where("project_id = ?", project.ID).Count(&fases).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if fases > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "project heeft nog fases"})
			return
		}

		ctx := historie.WithNote(c.Request.Context(), "Project verwijderd via API")
		if err := db.WithContext(ctx).Delete(&project).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "verwijderd"})
	}
}
