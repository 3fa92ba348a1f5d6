package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maarten-vizzerz/comaker/internal/historie"
	"github.com/maarten-vizzerz/comaker/internal/models"
)

// ListLeveranciers returns leveranciers, filterable on status, type and a
// naam/contact search term.
func ListLeveranciers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&models.Leverancier{})
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if typ := c.Query("type"); typ != "" {
			q = q.Where("type = ?", typ)
		}
		if search := c.Query("q"); search != "" {
			like := "%" + search + "%"
			q = q.Where("(naam LIKE ? OR contactpersoon LIKE ? OR email LIKE ?)", like, like, like)
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		var leveranciers []models.Leverancier
		if err := q.Order("naam ASC").Limit(limit).Offset(offset).Find(&leveranciers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"leveranciers": leveranciers})
	}
}

func GetLeverancier(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var leverancier models.Leverancier
		if err := db.First(&leverancier, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "leverancier niet gevonden"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"leverancier": leverancier})
	}
}

func CreateLeverancier(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Naam            string   `json:"naam" binding:"required"`
			KvkNummer       *string  `json:"kvk_nummer"`
			BtwNummer       *string  `json:"btw_nummer"`
			Type            string   `json:"type" binding:"required"`
			Status          string   `json:"status"`
			Contactpersoon  *string  `json:"contactpersoon"`
			Email           *string  `json:"email"`
			Telefoon        *string  `json:"telefoon"`
			Mobiel          *string  `json:"mobiel"`
			Website         *string  `json:"website"`
			AdresStraat     *string  `json:"adres_straat"`
			AdresHuisnummer *string  `json:"adres_huisnummer"`
			AdresPostcode   *string  `json:"adres_postcode"`
			AdresPlaats     *string  `json:"adres_plaats"`
			AdresLand       *string  `json:"adres_land"`
			Iban            *string  `json:"iban"`
			BankNaam        *string  `json:"bank_naam"`
			Notities        *string  `json:"notities"`
			Rating          *float64 `json:"rating"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status := models.LeverancierActief
		if input.Status != "" {
			status = models.LeverancierStatus(input.Status)
		}
		leverancier := models.Leverancier{
			ID:              uuid.NewString(),
			Naam:            input.Naam,
			KvkNummer:       input.KvkNummer,
			BtwNummer:       input.BtwNummer,
			Type:            models.LeverancierType(input.Type),
			Status:          status,
			Contactpersoon:  input.Contactpersoon,
			Email:           input.Email,
			Telefoon:        input.Telefoon,
			Mobiel:          input.Mobiel,
			Website:         input.Website,
			AdresStraat:     input.AdresStraat,
			AdresHuisnummer: input.AdresHuisnummer,
			AdresPostcode:   input.AdresPostcode,
			AdresPlaats:     input.AdresPlaats,
			AdresLand:       input.AdresLand,
			Iban:            input.Iban,
			BankNaam:        input.BankNaam,
			Notities:        input.Notities,
			Rating:          input.Rating,
		}

		ctx := historie.WithNote(c.Request.Context(), "Leverancier aangemaakt via API")
		if err := db.WithContext(ctx).Create(&leverancier).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"leverancier": leverancier})
	}
}

func UpdateLeverancier(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var leverancier models.Leverancier
		if err := db.First(&leverancier, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "leverancier niet gevonden"})
			return
		}

		var input struct {
			Naam            *string  `json:"naam"`
			KvkNummer       *string  `json:"kvk_nummer"`
			BtwNummer       *string  `json:"btw_nummer"`
			Type            *string  `json:"type"`
			Status          *string  `json:"status"`
			Contactpersoon  *string  `json:"contactpersoon"`
			Email           *string  `json:"email"`
			Telefoon        *string  `json:"telefoon"`
			Mobiel          *string  `json:"mobiel"`
			Website         *string  `json:"website"`
			AdresStraat     *string  `json:"adres_straat"`
			AdresHuisnummer *string  `json:"adres_huisnummer"`
			AdresPostcode   *string  `json:"adres_postcode"`
			AdresPlaats     *string  `json:"adres_plaats"`
			AdresLand       *string  `json:"adres_land"`
			Iban            *string  `json:"iban"`
			BankNaam        *string  `json:"bank_naam"`
			Notities        *string  `json:"notities"`
			Rating          *float64 `json:"rating"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Naam != nil {
			leverancier.Naam = *input.Naam
		}
		if input.KvkNummer != nil {
			leverancier.KvkNummer = input.KvkNummer
		}
		if input.BtwNummer != nil {
			leverancier.BtwNummer = input.BtwNummer
		}
		if input.Type != nil {
			leverancier.Type = models.LeverancierType(*input.Type)
		}
		if input.Status != nil {
			leverancier.Status = models.LeverancierStatus(*input.Status)
		}
		if input.Contactpersoon != nil {
			leverancier.Contactpersoon = input.Contactpersoon
		}
		if input.Email != nil {
			leverancier.Email = input.Email
		}
		if input.Telefoon != nil {
			leverancier.Telefoon = input.Telefoon
		}
		if input.Mobiel != nil {
			leverancier.Mobiel = input.Mobiel
		}
		if input.Website != nil {
			leverancier.Website = input.Website
		}
		if input.AdresStraat != nil {
			leverancier.AdresStraat = input.AdresStraat
		}
		if input.AdresHuisnummer != nil {
			leverancier.AdresHuisnummer = input.AdresHuisnummer
		}
		if input.AdresPostcode != nil {
			leverancier.AdresPostcode = input.AdresPostcode
		}
		if input.AdresPlaats != nil {
			leverancier.AdresPlaats = input.AdresPlaats
		}
		if input.AdresLand != nil {
			leverancier.AdresLand = input.AdresLand
		}
		if input.Iban != nil {
			leverancier.Iban = input.Iban
		}
		if input.BankNaam != nil {
			leverancier.BankNaam = input.BankNaam
		}
		if input.Notities != nil {
			leverancier.Notities = input.Notities
		}
		if input.Rating != nil {
			leverancier.Rating = input.Rating
		}

		ctx := historie.WithNote(c.Request.Context(), "Leverancier bijgewerkt via API")
		if err := db.WithContext(ctx).Save(&leverancier).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"leverancier": leverancier})
	}
}

func DeleteLeverancier(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var leverancier models.Leverancier
		if err := db.First(&leverancier, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "leverancier niet gevonden"})
			return
		}

		ctx := historie.WithNote(c.Request.Context(), "Leverancier verwijderd via API")
		if err := db.WithContext(ctx).Delete(&leverancier).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "verwijderd"})
	}
}
