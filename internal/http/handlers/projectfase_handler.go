package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maarten-vizzerz/comaker/internal/auth"
	"github.com/maarten-vizzerz/comaker/internal/historie"
	"github.com/maarten-vizzerz/comaker/internal/models"
	"github.com/maarten-vizzerz/comaker/internal/rbac"
)

func ListProjectFases(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var project models.Project
		if err := db.First(&project, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "project niet gevonden"})
			return
		}

		var fases []models.ProjectFase
		if err := db.Where("project_id = ?", project.ID).Order("fase_nummer ASC").Find(&fases).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fases": fases})
	}
}

func GetProjectFase(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fase models.ProjectFase
		if err := db.First(&fase, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "fase niet gevonden"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fase": fase})
	}
}

func CreateProjectFase(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var project models.Project
		if err := db.First(&project, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "project niet gevonden"})
			return
		}

		var input struct {
			FaseNummer          int        `json:"fase_nummer" binding:"required"`
			Naam                string     `json:"naam" binding:"required"`
			Beschrijving        *string    `json:"beschrijving"`
			VerantwoordelijkeID *string    `json:"verantwoordelijke_id"`
			LeverancierID       *string    `json:"leverancier_id"`
			GeplandeStartDatum  *time.Time `json:"geplande_start_datum"`
			GeplandeEindDatum   *time.Time `json:"geplande_eind_datum"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var bestaand int64
		if err := db.Model(&models.ProjectFase{}).
			Where("project_id = ? AND fase_nummer = ?", project.ID, input.FaseNummer).
			Count(&bestaand).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if bestaand > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "fasenummer bestaat al voor dit project"})
			return
		}

		fase := models.ProjectFase{
			ID:                  uuid.NewString(),
			ProjectID:           project.ID,
			FaseNummer:          input.FaseNummer,
			Naam:                input.Naam,
			Beschrijving:        input.Beschrijving,
			Status:              models.FaseNietGestart,
			VerantwoordelijkeID: input.VerantwoordelijkeID,
			LeverancierID:       input.LeverancierID,
			GeplandeStartDatum:  input.GeplandeStartDatum,
			GeplandeEindDatum:   input.GeplandeEindDatum,
		}

		ctx := historie.WithNote(c.Request.Context(), "Projectfase aangemaakt via API")
		if err := db.WithContext(ctx).Create(&fase).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"fase": fase})
	}
}

func UpdateProjectFase(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fase models.ProjectFase
		if err := db.First(&fase, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "fase niet gevonden"})
			return
		}

		var input struct {
			Naam                 *string    `json:"naam"`
			Beschrijving         *string    `json:"beschrijving"`
			Status               *string    `json:"status"`
			VerantwoordelijkeID  *string    `json:"verantwoordelijke_id"`
			LeverancierID        *string    `json:"leverancier_id"`
			GeplandeStartDatum   *time.Time `json:"geplande_start_datum"`
			GeplandeEindDatum    *time.Time `json:"geplande_eind_datum"`
			WerkelijkeStartDatum *time.Time `json:"werkelijke_start_datum"`
			WerkelijkeEindDatum  *time.Time `json:"werkelijke_eind_datum"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Naam != nil {
			fase.Naam = *input.Naam
		}
		if input.Beschrijving != nil {
			fase.Beschrijving = input.Beschrijving
		}
		if input.Status != nil {
			fase.Status = models.ProjectFaseStatus(*input.Status)
		}
		if input.VerantwoordelijkeID != nil {
			fase.VerantwoordelijkeID = input.VerantwoordelijkeID
		}
		if input.LeverancierID != nil {
			fase.LeverancierID = input.LeverancierID
		}
		if input.GeplandeStartDatum != nil {
			fase.GeplandeStartDatum = input.GeplandeStartDatum
		}
		if input.GeplandeEindDatum != nil {
			fase.GeplandeEindDatum = input.GeplandeEindDatum
		}
		if input.WerkelijkeStartDatum != nil {
			fase.WerkelijkeStartDatum = input.WerkelijkeStartDatum
		}
		if input.WerkelijkeEindDatum != nil {
			fase.WerkelijkeEindDatum = input.WerkelijkeEindDatum
		}

		ctx := historie.WithNote(c.Request.Context(), "Projectfase bijgewerkt via API")
		if err := db.WithContext(ctx).Save(&fase).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fase": fase})
	}
}

func DeleteProjectFase(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fase models.ProjectFase
		if err := db.First(&fase, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "fase niet gevonden"})
			return
		}

		ctx := historie.WithNote(c.Request.Context(), "Projectfase verwijderd via API")
		if err := db.WithContext(ctx).Delete(&fase).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "verwijderd"})
	}
}

func ListFaseDocumenten(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fase models.ProjectFase
		if err := db.First(&fase, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "fase niet gevonden"})
			return
		}

		q := db.Where("fase_id = ?", fase.ID)
		if claims := auth.ClaimsFrom(c); claims != nil && claims.Role == models.RoleLeverancier {
			q = q.Where("zichtbaar_voor_leverancier = ?", true)
		}

		var documenten []models.ProjectFaseDocument
		if err := q.Order("upload_datum DESC").Find(&documenten).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"documenten": documenten})
	}
}

func CreateFaseDocument(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fase models.ProjectFase
		if err := db.First(&fase, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "fase niet gevonden"})
			return
		}

		var input struct {
			Naam                     string  `json:"naam" binding:"required"`
			Beschrijving             *string `json:"beschrijving"`
			Type                     string  `json:"type" binding:"required"`
			Bestandsnaam             string  `json:"bestandsnaam" binding:"required"`
			Bestandstype             string  `json:"bestandstype" binding:"required"`
			Bestandsgrootte          *int    `json:"bestandsgrootte"`
			OpslagPad                string  `json:"opslag_pad" binding:"required"`
			SharepointID             *string `json:"sharepoint_id"`
			ZichtbaarVoorLeverancier *bool   `json:"zichtbaar_voor_leverancier"`
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

		document := models.ProjectFaseDocument{
			ID:                       uuid.NewString(),
			FaseID:                   fase.ID,
			Naam:                     input.Naam,
			Beschrijving:             input.Beschrijving,
			Type:                     models.DocumentType(input.Type),
			Bestandsnaam:             input.Bestandsnaam,
			Bestandstype:             input.Bestandstype,
			Bestandsgrootte:          input.Bestandsgrootte,
			OpslagType:               "local",
			OpslagPad:                input.OpslagPad,
			SharepointID:             input.SharepointID,
			Versie:                   "1.0",
			GeuploadDoorID:           userID,
			UploadDatum:              time.Now().UTC(),
			ZichtbaarVoorLeverancier: true,
		}
		if input.SharepointID != nil {
			document.OpslagType = "sharepoint"
		}
		if input.ZichtbaarVoorLeverancier != nil {
			document.ZichtbaarVoorLeverancier = *input.ZichtbaarVoorLeverancier
		}

		ctx := historie.WithNote(c.Request.Context(), "Document toegevoegd via API")
		if err := db.WithContext(ctx).Create(&document).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"document": document})
	}
}

func UpdateFaseDocument(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var document models.ProjectFaseDocument
		if err := db.First(&document, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "document niet gevonden"})
			return
		}

		var input struct {
			Naam                     *string `json:"naam"`
			Beschrijving             *string `json:"beschrijving"`
			Versie                   *string `json:"versie"`
			IsDefinitief             *bool   `json:"is_definitief"`
			ZichtbaarVoorLeverancier *bool   `json:"zichtbaar_voor_leverancier"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Naam != nil {
			document.Naam = *input.Naam
		}
		if input.Beschrijving != nil {
			document.Beschrijving = input.Beschrijving
		}
		if input.Versie != nil {
			document.Versie = *input.Versie
		}
		if input.IsDefinitief != nil {
			document.IsDefinitief = *input.IsDefinitief
		}
		if input.ZichtbaarVoorLeverancier != nil {
			document.ZichtbaarVoorLeverancier = *input.ZichtbaarVoorLeverancier
		}

		ctx := historie.WithNote(c.Request.Context(), "Document bijgewerkt via API")
		if err := db.WithContext(ctx).Save(&document).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"document": document})
	}
}

func DeleteFaseDocument(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var document models.ProjectFaseDocument
		if err := db.First(&document, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "document niet gevonden"})
			return
		}

		ctx := historie.WithNote(c.Request.Context(), "Document verwijderd via API")
		if err := db.WithContext(ctx).Delete(&document).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "verwijderd"})
	}
}

func ListFaseCommentaren(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fase models.ProjectFase
		if err := db.First(&fase, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "fase niet gevonden"})
			return
		}

		q := db.Where("fase_id = ?", fase.ID)
		if claims := auth.ClaimsFrom(c); claims != nil && claims.Role == models.RoleLeverancier {
			q = q.Where("type = ?", models.CommentaarLeverancier)
		}
		if t := c.Query("type"); t != "" {
			q = q.Where("type = ?", t)
		}

		var commentaren []models.ProjectFaseCommentaar
		if err := q.Order("created_at DESC").Find(&commentaren).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"commentaren": commentaren})
	}
}

func CreateFaseCommentaar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Leveranciers mogen in hun eigen thread reageren, read-only niet.
		if claims := auth.ClaimsFrom(c); claims != nil &&
			!rbac.CanWrite(claims.Role) && claims.Role != models.RoleLeverancier {
			c.JSON(http.StatusForbidden, gin.H{"error": "onvoldoende rechten"})
			return
		}

		var fase models.ProjectFase
		if err := db.First(&fase, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "fase niet gevonden"})
			return
		}

		var input struct {
			Type               string  `json:"type" binding:"required"`
			Onderwerp          *string `json:"onderwerp"`
			Bericht            string  `json:"bericht" binding:"required"`
			LeverancierID      *string `json:"leverancier_id"`
			ParentCommentaarID *string `json:"parent_commentaar_id"`
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

		now := time.Now().UTC()
		commentaar := models.ProjectFaseCommentaar{
			ID:                 uuid.NewString(),
			FaseID:             fase.ID,
			Type:               models.CommentaarType(input.Type),
			Status:             models.CommentaarGepubliceerd,
			Onderwerp:          input.Onderwerp,
			Bericht:            input.Bericht,
			AuteurID:           userID,
			LeverancierID:      input.LeverancierID,
			ParentCommentaarID: input.ParentCommentaarID,
			GepubliceerdOp:     &now,
		}

		ctx := historie.WithNote(c.Request.Context(), "Commentaar geplaatst via API")
		if err := db.WithContext(ctx).Create(&commentaar).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"commentaar": commentaar})
	}
}

func UpdateFaseCommentaar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := auth.ClaimsFrom(c); claims != nil &&
			!rbac.CanWrite(claims.Role) && claims.Role != models.RoleLeverancier {
			c.JSON(http.StatusForbidden, gin.H{"error": "onvoldoende rechten"})
			return
		}

		var commentaar models.ProjectFaseCommentaar
		if err := db.First(&commentaar, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "commentaar niet gevonden"})
			return
		}

		userID := historie.UserFrom(c.Request.Context())
		claims := auth.ClaimsFrom(c)
		if commentaar.AuteurID != userID && (claims == nil || claims.Role != models.RoleBeheerder) {
			c.JSON(http.StatusForbidden, gin.H{"error": "alleen de auteur kan dit commentaar bewerken"})
			return
		}

		var input struct {
			Onderwerp *string `json:"onderwerp"`
			Bericht   *string `json:"bericht"`
			Status    *string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Onderwerp != nil {
			commentaar.Onderwerp = input.Onderwerp
		}
		if input.Bericht != nil {
			commentaar.Bericht = *input.Bericht
		}
		if input.Status != nil {
			commentaar.Status = models.CommentaarStatus(*input.Status)
		}
		now := time.Now().UTC()
		commentaar.BewerktOp = &now

		ctx := historie.WithNote(c.Request.Context(), "Commentaar bewerkt via API")
		if err := db.WithContext(ctx).Save(&commentaar).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"commentaar": commentaar})
	}
}

func DeleteFaseCommentaar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var commentaar models.ProjectFaseCommentaar
		if err := db.First(&commentaar, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "commentaar niet gevonden"})
			return
		}

		ctx := historie.WithNote(c.Request.Context(), "Commentaar verwijderd via API")
		if err := db.WithContext(ctx).Delete(&commentaar).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "verwijderd"})
	}
}
