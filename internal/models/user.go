package models

import (
	"time"

	"github.com/maarten-vizzerz/comaker/internal/historie"
)

type UserRole string

const (
	RoleBeheerder      UserRole = "beheerder"
	RoleProjectleider  UserRole = "projectleider"
	RoleControleur     UserRole = "controleur"
	RoleAdministratief UserRole = "administratief_medewerker"
	RoleLeverancier    UserRole = "leverancier"
	RoleReadOnly       UserRole = "read_only"
)

type User struct {
	ID             string   `gorm:"primaryKey;size:36" json:"id"`
	Email          string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	HashedPassword string   `gorm:"size:255;not null" json:"-"`
	Name           string   `gorm:"size:200;not null" json:"name"`
	Role           UserRole `gorm:"size:40;not null" json:"role"`
	IsActive       bool     `gorm:"default:true" json:"is_active"`
	Avatar         *string  `gorm:"size:255" json:"avatar"`

	// Users with role "leverancier" are linked to their leverancier record.
	LeverancierID *string `gorm:"size:36;index" json:"leverancier_id"`

	VersieNummer int `gorm:"not null;default:1" json:"versie_nummer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) AuditRecordID() string { return u.ID }
func (u *User) AuditVersion() int     { return u.VersieNummer }
func (u *User) SetAuditVersion(v int) { u.VersieNummer = v }

// Snapshot lists every persistent column except the password hash, which is
// never written to the historie log.
func (u *User) Snapshot() historie.FieldMap {
	return historie.FieldMap{
		"id":             u.ID,
		"email":          u.Email,
		"name":           u.Name,
		"role":           string(u.Role),
		"is_active":      u.IsActive,
		"avatar":         historie.NullString(u.Avatar),
		"leverancier_id": historie.NullString(u.LeverancierID),
		"versie_nummer":  u.VersieNummer,
		"created_at":     historie.Timestamp(u.CreatedAt),
		"updated_at":     historie.Timestamp(u.UpdatedAt),
	}
}
