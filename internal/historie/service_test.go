package historie_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maarten-vizzerz/comaker/internal/historie"
	"github.com/maarten-vizzerz/comaker/internal/models"
)

func newTestService(t *testing.T, gdb *gorm.DB) *historie.Service {
	t.Helper()
	reg := historie.NewRegistry()
	models.RegisterAuditables(reg)
	return historie.NewService(gdb, reg)
}

// insertRecord seeds a raw historie row, bypassing the tracker. The historie
// log itself is not a tracked table, so a plain create suffices.
func insertRecord(t *testing.T, gdb *gorm.DB, tabel, rid string, versie int, actie historie.Actie, userID string, op time.Time) {
	t.Helper()
	rec := historie.Record{
		ID:           uuid.NewString(),
		TabelNaam:    tabel,
		RecordID:     rid,
		VersieNummer: versie,
		Actie:        actie,
		GewijzigdOp:  op,
	}
	if userID != "" {
		rec.GewijzigdDoorID = &userID
	}
	if err := gdb.Create(&rec).Error; err != nil {
		t.Fatalf("insert record: %v", err)
	}
}

func TestServiceHistory(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatal(err)
	}
	mobiel := "0612345678"
	lev.Mobiel = &mobiel
	if err := gdb.Save(lev).Error; err != nil {
		t.Fatal(err)
	}

	entries, err := svc.History(ctx, "leveranciers", lev.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].VersieNummer != 2 || entries[1].VersieNummer != 1 {
		t.Errorf("order = v%d, v%d; want v2, v1", entries[0].VersieNummer, entries[1].VersieNummer)
	}
	if entries[0].Actie != historie.ActieUpdate || entries[1].Actie != historie.ActieCreate {
		t.Errorf("acties = %s, %s", entries[0].Actie, entries[1].Actie)
	}
}

func TestServiceHistoryUnknownRecord(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)

	entries, err := svc.History(context.Background(), "leveranciers", "bestaat-niet")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries for unknown record, want 0", len(entries))
	}
	if entries == nil {
		t.Error("entries is nil, want empty slice")
	}
}

func TestServiceVersionSnapshot(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatal(err)
	}
	nieuw := "administratie@jansen.nl"
	lev.Email = &nieuw
	if err := gdb.Save(lev).Error; err != nil {
		t.Fatal(err)
	}

	v1, err := svc.VersionSnapshot(ctx, "leveranciers", lev.ID, 1)
	if err != nil {
		t.Fatalf("VersionSnapshot v1: %v", err)
	}
	if v1["email"] != "info@jansen.nl" {
		t.Errorf("v1 email = %v", v1["email"])
	}
	v2, err := svc.VersionSnapshot(ctx, "leveranciers", lev.ID, 2)
	if err != nil {
		t.Fatalf("VersionSnapshot v2: %v", err)
	}
	if v2["email"] != "administratie@jansen.nl" {
		t.Errorf("v2 email = %v", v2["email"])
	}

	if _, err := svc.VersionSnapshot(ctx, "leveranciers", lev.ID, 99); !errors.Is(err, historie.ErrNotFound) {
		t.Errorf("v99 err = %v, want ErrNotFound", err)
	}
}

func TestServiceVersionSnapshotOfDelete(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatal(err)
	}
	if err := gdb.Delete(lev).Error; err != nil {
		t.Fatal(err)
	}

	// The DELETE entry shares versie 1 with the CREATE; the materialized
	// CREATE state wins over the delete's empty after-image.
	snap, err := svc.VersionSnapshot(ctx, "leveranciers", lev.ID, 1)
	if err != nil {
		t.Fatalf("VersionSnapshot v1 of deleted record: %v", err)
	}
	if snap["naam"] != "Bouwbedrijf Jansen" {
		t.Errorf("snapshot naam = %v", snap["naam"])
	}

	web := newLeverancier()
	if err := gdb.Create(web).Error; err != nil {
		t.Fatal(err)
	}
	site := "https://jansen.nl"
	web.Website = &site
	if err := gdb.Save(web).Error; err != nil {
		t.Fatal(err)
	}
	if err := gdb.Delete(web).Error; err != nil {
		t.Fatal(err)
	}

	recs := recordsFor(t, gdb, "leveranciers", web.ID)
	if len(recs) != 3 || recs[2].Actie != historie.ActieDelete || recs[2].VersieNummer != 2 {
		t.Fatalf("unexpected chain: %d records", len(recs))
	}
	// Versie 2 now exists twice (UPDATE and DELETE); requesting it yields the
	// materialized UPDATE state, not an error.
	v2, err := svc.VersionSnapshot(ctx, "leveranciers", web.ID, 2)
	if err != nil {
		t.Fatalf("VersionSnapshot v2 with delete present: %v", err)
	}
	if v2["website"] != "https://jansen.nl" {
		t.Errorf("v2 website = %v", v2["website"])
	}
}

func TestServiceCompare(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatal(err)
	}
	nieuw := "administratie@jansen.nl"
	lev.Email = &nieuw
	if err := gdb.Save(lev).Error; err != nil {
		t.Fatal(err)
	}

	diff, err := svc.Compare(ctx, "leveranciers", lev.ID, 1, 2)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	c, ok := diff["email"]
	if !ok {
		t.Fatalf("diff mist email: %v", diff)
	}
	if c.Oud != "info@jansen.nl" || c.Nieuw != "administratie@jansen.nl" {
		t.Errorf("email diff = %+v", c)
	}
	if _, ok := diff["naam"]; ok {
		t.Error("unchanged veld naam in diff")
	}

	// Reversed arguments mirror oud/nieuw, direction is never normalized.
	terug, err := svc.Compare(ctx, "leveranciers", lev.ID, 2, 1)
	if err != nil {
		t.Fatalf("Compare reversed: %v", err)
	}
	r := terug["email"]
	if r.Oud != "administratie@jansen.nl" || r.Nieuw != "info@jansen.nl" {
		t.Errorf("reversed email diff = %+v", r)
	}

	if _, err := svc.Compare(ctx, "leveranciers", lev.ID, 1, 99); !errors.Is(err, historie.ErrNotFound) {
		t.Errorf("Compare with missing versie err = %v, want ErrNotFound", err)
	}
}

func TestServiceUserActivityCap(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	basis := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 250; i++ {
		insertRecord(t, gdb, "projecten", fmt.Sprintf("rec-%d", i), 1,
			historie.ActieCreate, "drukke-gebruiker", basis.Add(time.Duration(i)*time.Second))
	}

	entries, err := svc.UserActivity(ctx, "drukke-gebruiker", 10000)
	if err != nil {
		t.Fatalf("UserActivity: %v", err)
	}
	if len(entries) != historie.MaxUserActivity {
		t.Errorf("got %d entries, want hard cap %d", len(entries), historie.MaxUserActivity)
	}

	standaard, err := svc.UserActivity(ctx, "drukke-gebruiker", 0)
	if err != nil {
		t.Fatalf("UserActivity default: %v", err)
	}
	if len(standaard) != 50 {
		t.Errorf("default limit returned %d, want 50", len(standaard))
	}
	// Newest first.
	if len(standaard) > 1 && standaard[0].GewijzigdOp.Before(standaard[1].GewijzigdOp) {
		t.Error("activity not ordered newest first")
	}

	niemand, err := svc.UserActivity(ctx, "onbekend", 10)
	if err != nil {
		t.Fatalf("UserActivity unknown: %v", err)
	}
	if len(niemand) != 0 {
		t.Errorf("unknown user returned %d entries", len(niemand))
	}
}

func TestServiceTableActivity(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	basis := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 120; i++ {
		insertRecord(t, gdb, "contracten", fmt.Sprintf("c-%d", i), 1,
			historie.ActieCreate, "", basis.Add(time.Duration(i)*time.Second))
	}

	standaard, err := svc.TableActivity(ctx, "contracten", 0)
	if err != nil {
		t.Fatalf("TableActivity: %v", err)
	}
	if len(standaard) != 100 {
		t.Errorf("default limit returned %d, want 100", len(standaard))
	}

	alles, err := svc.TableActivity(ctx, "contracten", 10000)
	if err != nil {
		t.Fatalf("TableActivity capped: %v", err)
	}
	if len(alles) != 120 {
		t.Errorf("got %d entries, want all 120 under the cap", len(alles))
	}
}

func TestServiceRecentChanges(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	nu := time.Now().UTC()
	insertRecord(t, gdb, "contracten", "c-1", 2, historie.ActieUpdate, "u1", nu.Add(-1*time.Hour))
	insertRecord(t, gdb, "projecten", "p-1", 1, historie.ActieCreate, "u1", nu.Add(-2*time.Hour))
	insertRecord(t, gdb, "contracten", "c-2", 3, historie.ActieUpdate, "u2", nu.Add(-30*time.Hour))

	standaard, err := svc.RecentChanges(ctx, historie.RecentFilter{})
	if err != nil {
		t.Fatalf("RecentChanges: %v", err)
	}
	if len(standaard) != 2 {
		t.Errorf("default window returned %d entries, want 2", len(standaard))
	}

	contracten, err := svc.RecentChanges(ctx, historie.RecentFilter{TabelNaam: "contracten"})
	if err != nil {
		t.Fatal(err)
	}
	if len(contracten) != 1 || contracten[0].RecordID != "c-1" {
		t.Errorf("tabel filter returned %v", contracten)
	}

	updates, err := svc.RecentChanges(ctx, historie.RecentFilter{Actie: "update"})
	if err != nil {
		t.Fatal(err)
	}
	if len(updates) != 1 || updates[0].Actie != historie.ActieUpdate {
		t.Errorf("actie filter returned %d entries", len(updates))
	}

	// An unrecognized actie filter is ignored, not rejected.
	raar, err := svc.RecentChanges(ctx, historie.RecentFilter{Actie: "verplaatst"})
	if err != nil {
		t.Fatalf("unknown actie filter errored: %v", err)
	}
	if len(raar) != 2 {
		t.Errorf("unknown actie filter returned %d entries, want 2", len(raar))
	}

	// The lookback window is bounded at a week, however much is asked.
	week, err := svc.RecentChanges(ctx, historie.RecentFilter{Hours: 100000})
	if err != nil {
		t.Fatal(err)
	}
	if len(week) != 3 {
		t.Errorf("clamped window returned %d entries, want 3", len(week))
	}
}

func TestServiceStatistics(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	nu := time.Now().UTC()
	insertRecord(t, gdb, "leveranciers", "l-1", 1, historie.ActieCreate, "u1", nu.Add(-1*time.Hour))
	insertRecord(t, gdb, "leveranciers", "l-1", 2, historie.ActieUpdate, "u1", nu.Add(-30*time.Minute))
	insertRecord(t, gdb, "projecten", "p-1", 1, historie.ActieCreate, "u2", nu.Add(-48*time.Hour))
	insertRecord(t, gdb, "projecten", "p-1", 1, historie.ActieDelete, "u1", nu.Add(-47*time.Hour))

	st, err := svc.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if st.TotaalWijzigingen != 4 {
		t.Errorf("totaal = %d, want 4", st.TotaalWijzigingen)
	}
	if st.PerTabel["leveranciers"] != 2 || st.PerTabel["projecten"] != 2 {
		t.Errorf("per_tabel = %v", st.PerTabel)
	}
	if st.PerActie["CREATE"] != 2 || st.PerActie["UPDATE"] != 1 || st.PerActie["DELETE"] != 1 {
		t.Errorf("per_actie = %v", st.PerActie)
	}
	if len(st.MeestActief) != 2 || st.MeestActief[0].UserID != "u1" || st.MeestActief[0].Aantal != 3 {
		t.Errorf("meest_actief = %+v", st.MeestActief)
	}
	if st.Laatste24Uur != 2 {
		t.Errorf("laatste_24_uur = %d, want 2", st.Laatste24Uur)
	}
}

func TestServiceStatisticsEmpty(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)

	st, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics on empty log: %v", err)
	}
	if st.TotaalWijzigingen != 0 || st.Laatste24Uur != 0 {
		t.Errorf("counts = %d/%d, want zeroes", st.TotaalWijzigingen, st.Laatste24Uur)
	}
	if len(st.PerTabel) != 0 || len(st.PerActie) != 0 || len(st.MeestActief) != 0 {
		t.Errorf("aggregates not empty: %+v", st)
	}
}

func TestServiceTableStatistics(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	nu := time.Now().UTC()
	insertRecord(t, gdb, "contracten", "c-1", 1, historie.ActieCreate, "", nu)
	insertRecord(t, gdb, "contracten", "c-1", 2, historie.ActieUpdate, "", nu)
	insertRecord(t, gdb, "contracten", "c-1", 3, historie.ActieUpdate, "", nu)
	insertRecord(t, gdb, "projecten", "p-1", 9, historie.ActieUpdate, "", nu)

	st, err := svc.TableStatistics(ctx, "contracten")
	if err != nil {
		t.Fatalf("TableStatistics: %v", err)
	}
	if st.TotaalWijzigingen != 3 {
		t.Errorf("totaal = %d, want 3", st.TotaalWijzigingen)
	}
	if st.PerActie["CREATE"] != 1 || st.PerActie["UPDATE"] != 2 {
		t.Errorf("per_actie = %v", st.PerActie)
	}
	if st.GemiddeldVersies != 2.0 {
		t.Errorf("gemiddeld = %v, want 2", st.GemiddeldVersies)
	}
	// The other table's versie 9 must not leak in.
	if st.MaxVersieNummer != 3 {
		t.Errorf("max = %d, want 3", st.MaxVersieNummer)
	}

	leeg, err := svc.TableStatistics(ctx, "vestigingen")
	if err != nil {
		t.Fatalf("TableStatistics empty: %v", err)
	}
	if leeg.TotaalWijzigingen != 0 || leeg.GemiddeldVersies != 0 || leeg.MaxVersieNummer != 0 {
		t.Errorf("empty table stats = %+v", leeg)
	}
}

func TestServiceRestore(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatal(err)
	}
	tussen := "tussen@jansen.nl"
	lev.Email = &tussen
	if err := gdb.Save(lev).Error; err != nil {
		t.Fatal(err)
	}
	laatste := "laatste@jansen.nl"
	lev.Email = &laatste
	if err := gdb.Save(lev).Error; err != nil {
		t.Fatal(err)
	}

	// Restoring versie 1 appends a new version; history is never rewritten.
	if err := svc.Restore(ctx, "leveranciers", lev.ID, 1); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	var terug models.Leverancier
	if err := gdb.First(&terug, "id = ?", lev.ID).Error; err != nil {
		t.Fatal(err)
	}
	if terug.Email == nil || *terug.Email != "info@jansen.nl" {
		t.Errorf("email na restore = %v, want info@jansen.nl", terug.Email)
	}
	if terug.VersieNummer != 4 {
		t.Errorf("VersieNummer na restore = %d, want 4", terug.VersieNummer)
	}

	recs := recordsFor(t, gdb, "leveranciers", lev.ID)
	if len(recs) != 4 {
		t.Fatalf("got %d records, want 4", len(recs))
	}
	if recs[3].Actie != historie.ActieUpdate || recs[3].VersieNummer != 4 {
		t.Errorf("restore entry = %s v%d, want UPDATE v4", recs[3].Actie, recs[3].VersieNummer)
	}
}

func TestServiceRestoreMissing(t *testing.T) {
	gdb := newTestDB(t)
	svc := newTestService(t, gdb)
	ctx := context.Background()

	if err := svc.Restore(ctx, "leveranciers", "bestaat-niet", 1); !errors.Is(err, historie.ErrNotFound) {
		t.Errorf("restore unknown record err = %v, want ErrNotFound", err)
	}
	if err := svc.Restore(ctx, "geen-tabel", "x", 1); !errors.Is(err, historie.ErrNotFound) {
		t.Errorf("restore unknown tabel err = %v, want ErrNotFound", err)
	}
}
