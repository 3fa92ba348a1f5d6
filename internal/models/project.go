package models

import (
	"time"

	"github.com/maarten-vizzerz/comaker/internal/historie"
)

type ProjectStatus string

const (
	ProjectConcept             ProjectStatus = "concept"
	ProjectInPlanning          ProjectStatus = "in_planning"
	ProjectOfferteAanvraag     ProjectStatus = "offerte_aanvraag"
	ProjectInUitvoering        ProjectStatus = "in_uitvoering"
	ProjectKwaliteitscontrole  ProjectStatus = "kwaliteitscontrole"
	ProjectVoorlopigOpgeleverd ProjectStatus = "voorlopig_opgeleverd"
	ProjectAfgerond            ProjectStatus = "afgerond"
)

type Project struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	ProjectNummer string        `gorm:"size:50;uniqueIndex;not null" json:"project_nummer"`
	Naam          string        `gorm:"size:200;not null" json:"naam"`
	Beschrijving  *string       `gorm:"type:text" json:"beschrijving"`
	Status        ProjectStatus `gorm:"size:30;not null;default:concept" json:"status"`

	BudgetTotaal  *int `gorm:"default:0" json:"budget_totaal"`
	BudgetBesteed *int `gorm:"default:0" json:"budget_besteed"`

	StartDatum *time.Time `json:"start_datum"`
	EindDatum  *time.Time `json:"eind_datum"`

	ProjectleiderID *string `gorm:"size:36;index" json:"projectleider_id"`
	VestigingID     *string `gorm:"size:36;index" json:"vestiging_id"`

	Opmerkingen *string `gorm:"type:text" json:"opmerkingen"`

	VersieNummer int `gorm:"not null;default:1" json:"versie_nummer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) AuditRecordID() string { return p.ID }
func (p *Project) AuditVersion() int     { return p.VersieNummer }
func (p *Project) SetAuditVersion(v int) { p.VersieNummer = v }

func (p *Project) Snapshot() historie.FieldMap {
	return historie.FieldMap{
		"id":               p.ID,
		"project_nummer":   p.ProjectNummer,
		"naam":             p.Naam,
		"beschrijving":     historie.NullString(p.Beschrijving),
		"status":           string(p.Status),
		"budget_totaal":    historie.NullInt(p.BudgetTotaal),
		"budget_besteed":   historie.NullInt(p.BudgetBesteed),
		"start_datum":      historie.NullTimestamp(p.StartDatum),
		"eind_datum":       historie.NullTimestamp(p.EindDatum),
		"projectleider_id": historie.NullString(p.ProjectleiderID),
		"vestiging_id":     historie.NullString(p.VestigingID),
		"opmerkingen":      historie.NullString(p.Opmerkingen),
		"versie_nummer":    p.VersieNummer,
		"created_at":       historie.Timestamp(p.CreatedAt),
		"updated_at":       historie.Timestamp(p.UpdatedAt),
	}
}

// BudgetPercentage is besteed as a share of totaal, clamped to whole percents.
func (p *Project) BudgetPercentage() int {
	totaal := 0
	if p.BudgetTotaal != nil {
		totaal = *p.BudgetTotaal
	}
	if totaal == 0 {
		return 0
	}
	besteed := 0
	if p.BudgetBesteed != nil {
		besteed = *p.BudgetBesteed
	}
	return besteed * 100 / totaal
}
