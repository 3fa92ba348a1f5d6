package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/maarten-vizzerz/comaker/internal/historie"
	"github.com/maarten-vizzerz/comaker/internal/models"
)

// Connect opens the database with a small retry loop so the API survives a
// database container that is still starting up.
func Connect(dsn string) *gorm.DB {
	var gdb *gorm.DB
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		gdb, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("database connect attempt %d/%d failed: %v", i, maxAttempts, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	sqlDB, _ := gdb.DB()
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("❌ Database ping failed: %v", err)
	}

	log.Println("✅ Database connected successfully")
	return gdb
}

// AutoMigrate creates/updates all tables, including the historie log.
func AutoMigrate(gdb *gorm.DB) {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Vestiging{},
		&models.Leverancier{},
		&models.Project{},
		&models.Contract{},
		&models.ProjectFase{},
		&models.ProjectFaseDocument{},
		&models.ProjectFaseCommentaar{},
		&models.ProcesTemplate{},
		&models.TemplateStap{},
		&models.TemplateDocumentSjabloon{},
		&historie.Record{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
}

// InstallHistorie wires the tracked-type registry and the change interceptor
// into the gorm instance. Returns the registry for the query service.
func InstallHistorie(gdb *gorm.DB) *historie.Registry {
	reg := historie.NewRegistry()
	models.RegisterAuditables(reg)
	if err := gdb.Use(historie.NewTracker(reg)); err != nil {
		log.Fatalf("❌ Historie tracker install failed: %v", err)
	}
	log.Printf("✅ Historie tracking actief voor: %v", reg.Tables())
	return reg
}
