package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maarten-vizzerz/comaker/internal/historie"
	"github.com/maarten-vizzerz/comaker/internal/models"
)

// taakItem is one row in the persoonlijke takenlijst, derived from fases.
type taakItem struct {
	FaseID        string     `json:"fase_id"`
	ProjectID     string     `json:"project_id"`
	ProjectNaam   string     `json:"project_naam"`
	ProjectNummer string     `json:"project_nummer"`
	FaseNaam      string     `json:"fase_naam"`
	FaseNummer    int        `json:"fase_nummer"`
	Deadline      *time.Time `json:"deadline"`
	Status        string     `json:"status"`
	Prioriteit    string     `json:"prioriteit"`
	Type          string     `json:"type"`
	Beschrijving  string     `json:"beschrijving"`
}

// taakPrioriteit grades a deadline: hoog binnen 3 dagen of verlopen, middel
// binnen 7 dagen, anders laag.
func taakPrioriteit(deadline *time.Time, nu time.Time) string {
	if deadline == nil {
		return "laag"
	}
	dagen := int(deadline.Sub(nu).Hours() / 24)
	switch {
	case dagen <= 3:
		return "hoog"
	case dagen <= 7:
		return "middel"
	default:
		return "laag"
	}
}

func taakVoorFase(fase models.ProjectFase, project models.Project, soort, beschrijving string, nu time.Time) taakItem {
	return taakItem{
		FaseID:        fase.ID,
		ProjectID:     project.ID,
		ProjectNaam:   project.Naam,
		ProjectNummer: project.ProjectNummer,
		FaseNaam:      fase.Naam,
		FaseNummer:    fase.FaseNummer,
		Deadline:      fase.GeplandeEindDatum,
		Status:        string(fase.Status),
		Prioriteit:    taakPrioriteit(fase.GeplandeEindDatum, nu),
		Type:          soort,
		Beschrijving:  beschrijving,
	}
}

// MijnTaken builds the takenlijst for the logged-in user: open fases where
// they are verantwoordelijke, deadlines within a week, and running fases
// without a single uploaded document.
func MijnTaken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := historie.UserFrom(c.Request.Context())
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "geen gebruiker in sessie"})
			return
		}
		nu := time.Now().UTC()

		var fases []models.ProjectFase
		err := db.Where("verantwoordelijke_id = ? AND status <> ?", userID, models.FaseAfgerond).
			Order("geplande_eind_datum ASC").
			Find(&fases).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		projecten := map[string]models.Project{}
		for _, fase := range fases {
			if _, ok := projecten[fase.ProjectID]; ok {
				continue
			}
			var project models.Project
			if err := db.First(&project, "id = ?", fase.ProjectID).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			projecten[fase.ProjectID] = project
		}

		openFases := make([]taakItem, 0, len(fases))
		binnenkortVerlopen := []taakItem{}
		missendeDocumenten := []taakItem{}
		overEenWeek := nu.Add(7 * 24 * time.Hour)

		for _, fase := range fases {
			project := projecten[fase.ProjectID]
			openFases = append(openFases, taakVoorFase(fase, project, "open_fase",
				fmt.Sprintf("Verantwoordelijk voor %s", fase.Naam), nu))

			if fase.GeplandeEindDatum != nil && !fase.GeplandeEindDatum.After(overEenWeek) {
				binnenkortVerlopen = append(binnenkortVerlopen, taakVoorFase(fase, project, "deadline",
					fmt.Sprintf("Deadline voor %s", fase.Naam), nu))
			}

			if fase.Status == models.FaseInUitvoering {
				var docs int64
				if err := db.Model(&models.ProjectFaseDocument{}).Where("fase_id = ?", fase.ID).Count(&docs).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				if docs == 0 {
					item := taakVoorFase(fase, project, "missend_document",
						fmt.Sprintf("Geen documenten geüpload voor %s", fase.Naam), nu)
					item.Prioriteit = "middel"
					missendeDocumenten = append(missendeDocumenten, item)
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"open_fases":          openFases,
			"binnenkort_verlopen": binnenkortVerlopen,
			"missende_documenten": missendeDocumenten,
			"totaal_aantal":       len(openFases) + len(binnenkortVerlopen) + len(missendeDocumenten),
		})
	}
}
