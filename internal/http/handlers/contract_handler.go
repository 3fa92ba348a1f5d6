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

func ListContracts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&models.Contract{})
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if leverancier := c.Query("leverancier_id"); leverancier != "" {
			q = q.Where("leverancier_id = ?", leverancier)
		}
		if project := c.Query("project_id"); project != "" {
			q = q.Where("project_id = ?", project)
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		var contracts []models.Contract
		if err := q.Order("contract_nummer ASC").Limit(limit).Offset(offset).Find(&contracts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"contracts": contracts})
	}
}

func GetContract(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contract models.Contract
		if err := db.First(&contract, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "contract niet gevonden"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"contract": contract})
	}
}

func CreateContract(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ContractNummer      string     `json:"contract_nummer" binding:"required"`
			Naam                string     `json:"naam" binding:"required"`
			Beschrijving        *string    `json:"beschrijving"`
			Type                string     `json:"type" binding:"required"`
			Status              string     `json:"status"`
			LeverancierID       string     `json:"leverancier_id" binding:"required"`
			ContractBedrag      float64    `json:"contract_bedrag" binding:"required"`
			GefactureerdBedrag  float64    `json:"gefactureerd_bedrag"`
			StartDatum          *time.Time `json:"start_datum"`
			EindDatum           *time.Time `json:"eind_datum"`
			GetekendDatum       *time.Time `json:"getekend_datum"`
			Opmerkingen         *string    `json:"opmerkingen"`
			ProjectID           *string    `json:"project_id"`
			VerantwoordelijkeID string     `json:"verantwoordelijke_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// The leverancier must exist; contracts always hang off one.
		var leverancier models.Leverancier
		if err := db.First(&leverancier, "id = ?", input.LeverancierID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "leverancier niet gevonden"})
			return
		}

		status := models.ContractConcept
		if input.Status != "" {
			status = models.ContractStatus(input.Status)
		}
		contract := models.Contract{
			ID:                  uuid.NewString(),
			ContractNummer:      input.ContractNummer,
			Naam:                input.Naam,
			Beschrijving:        input.Beschrijving,
			Type:                models.ContractType(input.Type),
			Status:              status,
			LeverancierID:       input.LeverancierID,
			ContractBedrag:      input.ContractBedrag,
			GefactureerdBedrag:  input.GefactureerdBedrag,
			StartDatum:          input.StartDatum,
			EindDatum:           input.EindDatum,
			GetekendDatum:       input.GetekendDatum,
			Opmerkingen:         input.Opmerkingen,
			ProjectID:           input.ProjectID,
			VerantwoordelijkeID: input.VerantwoordelijkeID,
		}

		ctx := historie.WithNote(c.Request.Context(), "Contract aangemaakt via API")
		if err := db.WithContext(ctx).Create(&contract).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"contract": contract})
	}
}

func UpdateContract(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contract models.Contract
		if err := db.First(&contract, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "contract niet gevonden"})
			return
		}

		var input struct {
			Naam               *string    `json:"naam"`
			Beschrijving       *string    `json:"beschrijving"`
			Type               *string    `json:"type"`
			Status             *string    `json:"status"`
			ContractBedrag     *float64   `json:"contract_bedrag"`
			GefactureerdBedrag *float64   `json:"gefactureerd_bedrag"`
			StartDatum         *time.Time `json:"start_datum"`
			EindDatum          *time.Time `json:"eind_datum"`
			GetekendDatum      *time.Time `json:"getekend_datum"`
			Opmerkingen        *string    `json:"opmerkingen"`
			ProjectID          *string    `json:"project_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Naam != nil {
			contract.Naam = *input.Naam
		}
		if input.Beschrijving != nil {
			contract.Beschrijving = input.Beschrijving
		}
		if input.Type != nil {
			contract.Type = models.ContractType(*input.Type)
		}
		if input.Status != nil {
			contract.Status = models.ContractStatus(*input.Status)
		}
		if input.ContractBedrag != nil {
			contract.ContractBedrag = *input.ContractBedrag
		}
		if input.GefactureerdBedrag != nil {
			contract.GefactureerdBedrag = *input.GefactureerdBedrag
		}
		if input.StartDatum != nil {
			contract.StartDatum = input.StartDatum
		}
		if input.EindDatum != nil {
			contract.EindDatum = input.EindDatum
		}
		if input.GetekendDatum != nil {
			contract.GetekendDatum = input.GetekendDatum
		}
		if input.Opmerkingen != nil {
			contract.Opmerkingen = input.Opmerkingen
		}
		if input.ProjectID != nil {
			contract.ProjectID = input.ProjectID
		}

		ctx := historie.WithNote(c.Request.Context(), "Contract bijgewerkt via API")
		if err := db.WithContext(ctx).Save(&contract).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"contract": contract})
	}
}

// ApproveContract records goedkeuring by the acting user.
func ApproveContract(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contract models.Contract
		if err := db.First(&contract, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "contract niet gevonden"})
			return
		}
		if contract.Status != models.ContractTerGoedkeuring {
			c.JSON(http.StatusConflict, gin.H{"error": "contract staat niet ter goedkeuring"})
			return
		}

		userID := historie.UserFrom(c.Request.Context())
		now := time.Now().UTC()
		contract.Status = models.ContractGoedgekeurd
		contract.GoedkeuringsDatum = &now
		if userID != "" {
			contract.GoedgekeurdDoorID = &userID
		}

		ctx := historie.WithNote(c.Request.Context(), "Contract goedgekeurd via API")
		if err := db.WithContext(ctx).Save(&contract).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"contract": contract})
	}
}

func DeleteContract(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contract models.Contract
		if err := db.First(&contract, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "contract niet gevonden"})
			return
		}

		ctx := historie.WithNote(c.Request.Context(), "Contract verwijderd via API")
		if err := db.WithContext(ctx).Delete(&contract).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "verwijderd"})
	}
}
