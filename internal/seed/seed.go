package seed

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maarten-vizzerz/comaker/internal/historie"
	"github.com/maarten-vizzerz/comaker/internal/models"
)

// FirstSetup creates the default beheerder, a vestiging and a demo
// leverancier/project chain. The whole run happens with historie tracking
// disabled for this session: seed data starts at versie 1 without any
// historie entries, and tracking in concurrently active sessions stays on.
func FirstSetup(gdb *gorm.DB) error {
	// Session makes the handle reusable across the calls below while the
	// skip setting stays attached to it.
	db := gdb.Set(historie.SkipSetting, true).Session(&gorm.Session{})

	// -------------------------
	// 1) Default beheerder
	// -------------------------
	const adminEmail = "beheerder@comaker.local"
	const adminPass = "Beheerder123!" // change after first login

	passHash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:             uuid.NewString(),
		Email:          adminEmail,
		Name:           "Beheerder",
		Role:           models.RoleBeheerder,
		IsActive:       true,
		HashedPassword: string(passHash),
		VersieNummer:   1,
	}
	if err := db.Where("email = ?", adminEmail).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	// -------------------------
	// 2) Default vestiging
	// -------------------------
	vestiging := models.Vestiging{
		ID:           uuid.NewString(),
		Naam:         "Hoofdkantoor Leiden",
		Code:         "LED",
		AdresPlaats:  "Leiden",
		AdresLand:    "Nederland",
		IsActief:     true,
		VersieNummer: 1,
	}
	if err := db.Where("code = ?", vestiging.Code).FirstOrCreate(&vestiging).Error; err != nil {
		return err
	}

	// -------------------------
	// 3) Demo leverancier + project
	// -------------------------
	leverancier := models.Leverancier{
		ID:           uuid.NewString(),
		Naam:         "Bouwbedrijf De Vries BV",
		Type:         models.LeverancierBouw,
		Status:       models.LeverancierActief,
		VersieNummer: 1,
	}
	if err := db.Where("naam = ?", leverancier.Naam).FirstOrCreate(&leverancier).Error; err != nil {
		return err
	}

	budget := 250000
	project := models.Project{
		ID:              uuid.NewString(),
		ProjectNummer:   "PRJ-2025-001",
		Naam:            "Renovatie Binnenhof",
		Status:          models.ProjectConcept,
		BudgetTotaal:    &budget,
		ProjectleiderID: &admin.ID,
		VestigingID:     &vestiging.ID,
		VersieNummer:    1,
	}
	if err := db.Where("project_nummer = ?", project.ProjectNummer).FirstOrCreate(&project).Error; err != nil {
		return err
	}

	log.Printf("✅ Seed OK | beheerder=%s pass=%s | vestiging=%s | project=%s",
		adminEmail, adminPass, vestiging.Code, project.ProjectNummer)
	return nil
}
