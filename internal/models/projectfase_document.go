package models

import (
	"time"

	"github.com/maarten-vizzerz/comaker/internal/historie"
)

type DocumentType string

const (
	DocumentContract DocumentType = "contract"
	DocumentOfferte  DocumentType = "offerte"
	DocumentTekening DocumentType = "tekening"
	DocumentRapport  DocumentType = "rapport"
	DocumentFoto     DocumentType = "foto"
	DocumentAnders   DocumentType = "anders"
)

type ProjectFaseDocument struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	FaseID string `gorm:"size:36;not null;index" json:"fase_id"`

	Naam         string       `gorm:"size:200;not null" json:"naam"`
	Beschrijving *string      `gorm:"type:text" json:"beschrijving"`
	Type         DocumentType `gorm:"size:20;not null" json:"type"`

	Bestandsnaam    string `gorm:"size:255;not null" json:"bestandsnaam"`
	Bestandstype    string `gorm:"size:100;not null" json:"bestandstype"`
	Bestandsgrootte *int   `json:"bestandsgrootte"`

	OpslagType   string  `gorm:"size:20;not null;default:local" json:"opslag_type"`
	OpslagPad    string  `gorm:"size:500;not null" json:"opslag_pad"`
	SharepointID *string `gorm:"size:100" json:"sharepoint_id"`

	Versie       string `gorm:"size:20;not null;default:1.0" json:"versie"`
	IsDefinitief bool   `gorm:"default:false;not null" json:"is_definitief"`

	GeuploadDoorID string    `gorm:"size:36;not null;index" json:"geupload_door_id"`
	UploadDatum    time.Time `json:"upload_datum"`

	ZichtbaarVoorLeverancier bool `gorm:"default:true;not null" json:"zichtbaar_voor_leverancier"`

	VersieNummer int `gorm:"not null;default:1" json:"versie_nummer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectFaseDocument) TableName() string { return "project_fase_documenten" }

func (d *ProjectFaseDocument) AuditRecordID() string { return d.ID }
func (d *ProjectFaseDocument) AuditVersion() int     { return d.VersieNummer }
func (d *ProjectFaseDocument) SetAuditVersion(v int) { d.VersieNummer = v }

func (d *ProjectFaseDocument) Snapshot() historie.FieldMap {
	return historie.FieldMap{
		"id":                         d.ID,
		"fase_id":                    d.FaseID,
		"naam":                       d.Naam,
		"beschrijving":               historie.NullString(d.Beschrijving),
		"type":                       string(d.Type),
		"bestandsnaam":               d.Bestandsnaam,
		"bestandstype":               d.Bestandstype,
		"bestandsgrootte":            historie.NullInt(d.Bestandsgrootte),
		"opslag_type":                d.OpslagType,
		"opslag_pad":                 d.OpslagPad,
		"sharepoint_id":              historie.NullString(d.SharepointID),
		"versie":                     d.Versie,
		"is_definitief":              d.IsDefinitief,
		"geupload_door_id":           d.GeuploadDoorID,
		"upload_datum":               historie.Timestamp(d.UploadDatum),
		"zichtbaar_voor_leverancier": d.ZichtbaarVoorLeverancier,
		"versie_nummer":              d.VersieNummer,
		"created_at":                 historie.Timestamp(d.CreatedAt),
		"updated_at":                 historie.Timestamp(d.UpdatedAt),
	}
}
