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

// Template mutations never touch the historie log: the tracked set is closed
// and template tables are not in it.

type templateDocumentSjabloonInput struct {
	Naam         string  `json:"naam" binding:"required"`
	Beschrijving *string `json:"beschrijving"`
	IsVerplicht  bool    `json:"is_verplicht"`
	VerwachtType *string `json:"verwacht_type"`
}

type templateStapInput struct {
	StapNummer                 int                             `json:"stap_nummer" binding:"required"`
	Naam                       string                          `json:"naam" binding:"required"`
	Beschrijving               *string                         `json:"beschrijving"`
	DefaultStatus              *string                         `json:"default_status"`
	GeschatteDoorlooptijdDagen *int                            `json:"geschatte_doorlooptijd_dagen"`
	VereistLeverancier         bool                            `json:"vereist_leverancier"`
	Instructies                *string                         `json:"instructies"`
	VerwachteDocumenten        []templateDocumentSjabloonInput `json:"verwachte_documenten"`
}

func ListProcesTemplates(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&models.ProcesTemplate{}).Preload("Stappen")
		if cat := c.Query("categorie"); cat != "" {
			q = q.Where("categorie = ?", cat)
		}
		if actief := c.Query("is_actief"); actief != "" {
			q = q.Where("is_actief = ?", actief == "true")
		}

		var templates []models.ProcesTemplate
		if err := q.Order("is_standaard DESC, naam ASC").Find(&templates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		items := make([]gin.H, 0, len(templates))
		for _, tpl := range templates {
			items = append(items, gin.H{
				"id":                   tpl.ID,
				"naam":                 tpl.Naam,
				"beschrijving":         tpl.Beschrijving,
				"categorie":            tpl.Categorie,
				"is_actief":            tpl.IsActief,
				"is_standaard":         tpl.IsStandaard,
				"aantal_keer_gebruikt": tpl.AantalKeerGebruikt,
				"aantal_stappen":       len(tpl.Stappen),
				"created_at":           tpl.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"templates": items})
	}
}

func GetProcesTemplate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var template models.ProcesTemplate
		err := db.Preload("Stappen", func(q *gorm.DB) *gorm.DB {
			return q.Order("stap_nummer ASC")
		}).Preload("Stappen.VerwachteDocumenten").
			First(&template, "id = ?", c.Param("id")).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "template niet gevonden"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"template": template})
	}
}

func CreateProcesTemplate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Naam         string              `json:"naam" binding:"required"`
			Beschrijving *string             `json:"beschrijving"`
			Categorie    string              `json:"categorie" binding:"required"`
			IsActief     *bool               `json:"is_actief"`
			Stappen      []templateStapInput `json:"stappen"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userID := historie.UserFrom(c.Request.Context())
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "geen gebruiker in sessie"})
			return
		}

		naam := strings.TrimSpace(input.Naam)
		var existing int64
		if err := db.Model(&models.ProcesTemplate{}).Where("naam = ?", naam).Count(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if existing > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "template met deze naam bestaat al"})
			return
		}

		template := models.ProcesTemplate{
			ID:            uuid.NewString(),
			Naam:          naam,
			Beschrijving:  input.Beschrijving,
			Categorie:     models.ProcesCategorie(input.Categorie),
			IsActief:      true,
			GemaaktDoorID: userID,
		}
		if input.IsActief != nil {
			template.IsActief = *input.IsActief
		}

		for _, stapIn := range input.Stappen {
			stap := models.TemplateStap{
				ID:                         uuid.NewString(),
				TemplateID:                 template.ID,
				StapNummer:                 stapIn.StapNummer,
				Naam:                       stapIn.Naam,
				Beschrijving:               stapIn.Beschrijving,
				DefaultStatus:              models.FaseNietGestart,
				GeschatteDoorlooptijdDagen: stapIn.GeschatteDoorlooptijdDagen,
				VereistLeverancier:         stapIn.VereistLeverancier,
				Instructies:                stapIn.Instructies,
			}
			if stapIn.DefaultStatus != nil {
				stap.DefaultStatus = models.ProjectFaseStatus(*stapIn.DefaultStatus)
			}
			for _, docIn := range stapIn.VerwachteDocumenten {
				stap.VerwachteDocumenten = append(stap.VerwachteDocumenten, models.TemplateDocumentSjabloon{
					ID:           uuid.NewString(),
					TemplateID:   template.ID,
					StapID:       stap.ID,
					Naam:         docIn.Naam,
					Beschrijving: docIn.Beschrijving,
					IsVerplicht:  docIn.IsVerplicht,
					VerwachtType: docIn.VerwachtType,
				})
			}
			template.Stappen = append(template.Stappen, stap)
		}

		if err := db.Create(&template).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"template": template})
	}
}

func UpdateProcesTemplate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var template models.ProcesTemplate
		if err := db.First(&template, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "template niet gevonden"})
			return
		}

		var input struct {
			Naam         *string `json:"naam"`
			Beschrijving *string `json:"beschrijving"`
			Categorie    *string `json:"categorie"`
			IsActief     *bool   `json:"is_actief"`
			IsStandaard  *bool   `json:"is_standaard"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Naam != nil {
			naam := strings.TrimSpace(*input.Naam)
			var existing int64
			err := db.Model(&models.ProcesTemplate{}).
				Where("naam = ? AND id <> ?", naam, template.ID).
				Count(&existing).Error
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if existing > 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "template met deze naam bestaat al"})
				return
			}
			template.Naam = naam
		}
		if input.Beschrijving != nil {
			template.Beschrijving = input.Beschrijving
		}
		if input.Categorie != nil {
			template.Categorie = models.ProcesCategorie(*input.Categorie)
		}
		if input.IsActief != nil {
			template.IsActief = *input.IsActief
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsStandaard != nil {
				// Er is hoogstens één standaard template.
				if *input.IsStandaard {
					err := tx.Model(&models.ProcesTemplate{}).
						Where("id <> ?", template.ID).
						Update("is_standaard", false).Error
					if err != nil {
						return err
					}
				}
				template.IsStandaard = *input.IsStandaard
			}
			return tx.Save(&template).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"template": template})
	}
}

func DeleteProcesTemplate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var template models.ProcesTemplate
		if err := db.First(&template, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "template niet gevonden"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("template_id = ?", template.ID).Delete(&models.TemplateDocumentSjabloon{}).Error; err != nil {
				return err
			}
			if err := tx.Where("template_id = ?", template.ID).Delete(&models.TemplateStap{}).Error; err != nil {
				return err
			}
			return tx.Delete(&template).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "verwijderd"})
	}
}

func SetStandaardProcesTemplate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var template models.ProcesTemplate
		if err := db.First(&template, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "template niet gevonden"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			err := tx.Model(&models.ProcesTemplate{}).
				Where("id <> ?", template.ID).
				Update("is_standaard", false).Error
			if err != nil {
				return err
			}
			template.IsStandaard = true
			return tx.Save(&template).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"template": template})
	}
}
