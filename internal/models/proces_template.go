package models

import "time"

type ProcesCategorie string

const (
	CategorieOnderhoud  ProcesCategorie = "onderhoud"
	CategorieRenovatie  ProcesCategorie = "renovatie"
	CategorieNieuwbouw  ProcesCategorie = "nieuwbouw"
	CategorieInspectie  ProcesCategorie = "inspectie"
	CategorieCalamiteit ProcesCategorie = "calamiteit"
	CategorieAnders     ProcesCategorie = "anders"
)

// ProcesTemplate is a reusable blueprint for a project's fase plan. Template
// tables are configuration data and stay outside the tracked set.
type ProcesTemplate struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	Naam         string          `gorm:"size:200;uniqueIndex;not null" json:"naam"`
	Beschrijving *string         `gorm:"type:text" json:"beschrijving"`
	Categorie    ProcesCategorie `gorm:"size:20;not null" json:"categorie"`

	IsActief           bool `gorm:"not null;default:true" json:"is_actief"`
	IsStandaard        bool `gorm:"not null;default:false" json:"is_standaard"`
	AantalKeerGebruikt int  `gorm:"not null;default:0" json:"aantal_keer_gebruikt"`

	GemaaktDoorID string `gorm:"size:36;not null" json:"gemaakt_door_id"`

	Stappen []TemplateStap `gorm:"foreignKey:TemplateID" json:"stappen,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProcesTemplate) TableName() string { return "proces_templates" }

type TemplateStap struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	TemplateID string `gorm:"size:36;not null;index" json:"template_id"`

	StapNummer    int               `gorm:"not null" json:"stap_nummer"`
	Naam          string            `gorm:"size:200;not null" json:"naam"`
	Beschrijving  *string           `gorm:"type:text" json:"beschrijving"`
	DefaultStatus ProjectFaseStatus `gorm:"size:20;not null;default:niet_gestart" json:"default_status"`

	GeschatteDoorlooptijdDagen *int    `json:"geschatte_doorlooptijd_dagen"`
	VereistLeverancier         bool    `gorm:"not null;default:false" json:"vereist_leverancier"`
	Instructies                *string `gorm:"type:text" json:"instructies"`

	VerwachteDocumenten []TemplateDocumentSjabloon `gorm:"foreignKey:StapID" json:"verwachte_documenten,omitempty"`
}

func (TemplateStap) TableName() string { return "template_stappen" }

type TemplateDocumentSjabloon struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	TemplateID string `gorm:"size:36;not null;index" json:"template_id"`
	StapID     string `gorm:"size:36;not null;index" json:"stap_id"`

	Naam         string  `gorm:"size:200;not null" json:"naam"`
	Beschrijving *string `gorm:"type:text" json:"beschrijving"`
	IsVerplicht  bool    `gorm:"not null;default:false" json:"is_verplicht"`
	VerwachtType *string `gorm:"size:50" json:"verwacht_type"`
}

func (TemplateDocumentSjabloon) TableName() string { return "template_document_sjablonen" }
