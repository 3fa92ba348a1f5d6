package models

import (
	"time"

	"github.com/maarten-vizzerz/comaker/internal/historie"
)

type ProjectFaseStatus string

const (
	FaseNietGestart  ProjectFaseStatus = "niet_gestart"
	FaseInUitvoering ProjectFaseStatus = "in_uitvoering"
	FaseAfgerond     ProjectFaseStatus = "afgerond"
	FaseGeblokkeerd  ProjectFaseStatus = "geblokkeerd"
)

type ProjectFase struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string `gorm:"size:36;not null;index" json:"project_id"`

	FaseNummer   int               `gorm:"not null" json:"fase_nummer"`
	Naam         string            `gorm:"size:200;not null" json:"naam"`
	Beschrijving *string           `gorm:"type:text" json:"beschrijving"`
	Status       ProjectFaseStatus `gorm:"size:20;not null;default:niet_gestart" json:"status"`

	VerantwoordelijkeID *string `gorm:"size:36;index" json:"verantwoordelijke_id"`
	LeverancierID       *string `gorm:"size:36;index" json:"leverancier_id"`

	GeplandeStartDatum   *time.Time `json:"geplande_start_datum"`
	GeplandeEindDatum    *time.Time `json:"geplande_eind_datum"`
	WerkelijkeStartDatum *time.Time `json:"werkelijke_start_datum"`
	WerkelijkeEindDatum  *time.Time `json:"werkelijke_eind_datum"`

	VersieNummer int `gorm:"not null;default:1" json:"versie_nummer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectFase) TableName() string { return "project_fases" }

func (f *ProjectFase) AuditRecordID() string { return f.ID }
func (f *ProjectFase) AuditVersion() int     { return f.VersieNummer }
func (f *ProjectFase) SetAuditVersion(v int) { f.VersieNummer = v }

func (f *ProjectFase) Snapshot() historie.FieldMap {
	return historie.FieldMap{
		"id":                     f.ID,
		"project_id":             f.ProjectID,
		"fase_nummer":            f.FaseNummer,
		"naam":                   f.Naam,
		"beschrijving":           historie.NullString(f.Beschrijving),
		"status":                 string(f.Status),
		"verantwoordelijke_id":   historie.NullString(f.VerantwoordelijkeID),
		"leverancier_id":         historie.NullString(f.LeverancierID),
		"geplande_start_datum":   historie.NullTimestamp(f.GeplandeStartDatum),
		"geplande_eind_datum":    historie.NullTimestamp(f.GeplandeEindDatum),
		"werkelijke_start_datum": historie.NullTimestamp(f.WerkelijkeStartDatum),
		"werkelijke_eind_datum":  historie.NullTimestamp(f.WerkelijkeEindDatum),
		"versie_nummer":          f.VersieNummer,
		"created_at":             historie.Timestamp(f.CreatedAt),
		"updated_at":             historie.Timestamp(f.UpdatedAt),
	}
}
