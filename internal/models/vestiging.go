package models

import (
	"time"

	"github.com/maarten-vizzerz/comaker/internal/historie"
)

// Vestiging is a location/office that projects can be linked to.
type Vestiging struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Naam string `gorm:"size:200;not null;index" json:"naam"`
	Code string `gorm:"size:10;not null;uniqueIndex" json:"code"` // LED, DFT, AMS, ...

	AdresStraat     *string `gorm:"size:200" json:"adres_straat"`
	AdresHuisnummer *string `gorm:"size:20" json:"adres_huisnummer"`
	AdresPostcode   *string `gorm:"size:10" json:"adres_postcode"`
	AdresPlaats     string  `gorm:"size:100;not null" json:"adres_plaats"`
	AdresLand       string  `gorm:"size:100;default:Nederland" json:"adres_land"`

	Telefoon *string `gorm:"size:30" json:"telefoon"`
	Email    *string `gorm:"size:255" json:"email"`

	Notities *string `gorm:"type:text" json:"notities"`
	IsActief bool    `gorm:"default:true;not null" json:"is_actief"`

	VersieNummer int `gorm:"not null;default:1" json:"versie_nummer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Vestiging) TableName() string { return "vestigingen" }

func (v *Vestiging) AuditRecordID() string { return v.ID }
func (v *Vestiging) AuditVersion() int     { return v.VersieNummer }
func (v *Vestiging) SetAuditVersion(n int) { v.VersieNummer = n }

func (v *Vestiging) Snapshot() historie.FieldMap {
	return historie.FieldMap{
		"id":               v.ID,
		"naam":             v.Naam,
		"code":             v.Code,
		"adres_straat":     historie.NullString(v.AdresStraat),
		"adres_huisnummer": historie.NullString(v.AdresHuisnummer),
		"adres_postcode":   historie.NullString(v.AdresPostcode),
		"adres_plaats":     v.AdresPlaats,
		"adres_land":       v.AdresLand,
		"telefoon":         historie.NullString(v.Telefoon),
		"email":            historie.NullString(v.Email),
		"notities":         historie.NullString(v.Notities),
		"is_actief":        v.IsActief,
		"versie_nummer":    v.VersieNummer,
		"created_at":       historie.Timestamp(v.CreatedAt),
		"updated_at":       historie.Timestamp(v.UpdatedAt),
	}
}
