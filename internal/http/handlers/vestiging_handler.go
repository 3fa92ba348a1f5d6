package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maarten-vizzerz/comaker/internal/historie"
	"github.com/maarten-vizzerz/comaker/internal/models"
)

func ListVestigingen(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&models.Vestiging{})
		if actief := c.Query("actief"); actief != "" {
			q = q.Where("is_actief = ?", actief == "true")
		}
		var vestigingen []models.Vestiging
		if err := q.Order("naam ASC").Find(&vestigingen).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"vestigingen": vestigingen})
	}
}

func GetVestiging(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vestiging models.Vestiging
		if err := db.First(&vestiging, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "vestiging niet gevonden"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"vestiging": vestiging})
	}
}

func CreateVestiging(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Naam            string  `json:"naam" binding:"required"`
			Code            string  `json:"code" binding:"required"`
			AdresStraat     *string `json:"adres_straat"`
			AdresHuisnummer *string `json:"adres_huisnummer"`
			AdresPostcode   *string `json:"adres_postcode"`
			AdresPlaats     string  `json:"adres_plaats" binding:"required"`
			AdresLand       *string `json:"adres_land"`
			Telefoon        *string `json:"telefoon"`
			Email           *string `json:"email"`
			Notities        *string `json:"notities"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		input.Code = strings.ToUpper(strings.TrimSpace(input.Code))

		var existing int64
		if err := db.Model(&models.Vestiging{}).Where("code = ?", input.Code).Count(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if existing > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "vestigingscode bestaat al"})
			return
		}

		vestiging := models.Vestiging{
			ID:              uuid.NewString(),
			Naam:            strings.TrimSpace(input.Naam),
			Code:            input.Code,
			AdresStraat:     input.AdresStraat,
			AdresHuisnummer: input.AdresHuisnummer,
			AdresPostcode:   input.AdresPostcode,
			AdresPlaats:     input.AdresPlaats,
			AdresLand:       "Nederland",
			Telefoon:        input.Telefoon,
			Email:           input.Email,
			Notities:        input.Notities,
			IsActief:        true,
		}
		if input.AdresLand != nil {
			vestiging.AdresLand = *input.AdresLand
		}

		ctx := historie.WithNote(c.Request.Context(), "Vestiging aangemaakt via API")
		if err := db.WithContext(ctx).Create(&vestiging).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"vestiging": vestiging})
	}
}

func UpdateVestiging(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vestiging models.Vestiging
		if err := db.First(&vestiging, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "vestiging niet gevonden"})
			return
		}

		var input struct {
			Naam            *string `json:"naam"`
			AdresStraat     *string `json:"adres_straat"`
			AdresHuisnummer *string `json:"adres_huisnummer"`
			AdresPostcode   *string `json:"adres_postcode"`
			AdresPlaats     *string `json:"adres_plaats"`
			AdresLand       *string `json:"adres_land"`
			Telefoon        *string `json:"telefoon"`
			Email           *string `json:"email"`
			Notities        *string `json:"notities"`
			IsActief        *bool   `json:"is_actief"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Naam != nil {
			vestiging.Naam = strings.TrimSpace(*input.Naam)
		}
		if input.AdresStraat != nil {
			vestiging.AdresStraat = input.AdresStraat
		}
		if input.AdresHuisnummer != nil {
			vestiging.AdresHuisnummer = input.AdresHuisnummer
		}
		if input.AdresPostcode != nil {
			vestiging.AdresPostcode = input.AdresPostcode
		}
		if input.AdresPlaats != nil {
			vestiging.AdresPlaats = *input.AdresPlaats
		}
		if input.AdresLand != nil {
			vestiging.AdresLand = *input.AdresLand
		}
		if input.Telefoon != nil {
			vestiging.Telefoon = input.Telefoon
		}
		if input.Email != nil {
			vestiging.Email = input.Email
		}
		if input.Notities != nil {
			vestiging.Notities = input.Notities
		}
		if input.IsActief != nil {
			vestiging.IsActief = *input.IsActief
		}

		ctx := historie.WithNote(c.Request.Context(), "Vestiging bijgewerkt via API")
		if err := db.WithContext(ctx).Save(&vestiging).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"vestiging": vestiging})
	}
}

func DeleteVestiging(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vestiging models.Vestiging
		if err := db.First(&vestiging, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "vestiging niet gevonden"})
			return
		}

		var projecten int64
		if err := db.Model(&models.Project{}).Where("vestiging_id = ?", vestiging.ID).Count(&projecten).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if projecten > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "vestiging heeft nog gekoppelde projecten"})
			return
		}

		ctx := historie.WithNote(c.Request.Context(), "Vestiging verwijderd via API")
		if err := db.WithContext(ctx).Delete(&vestiging).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "verwijderd"})
	}
}
