package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maarten-vizzerz/comaker/internal/historie"
)

// RecordHistorie lists every historie entry for one record, newest first.
// An unknown record yields an empty list, not a 404: the service does not
// validate existence against the source table.
func RecordHistorie(svc *historie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.History(c.Request.Context(), c.Param("tabel"), c.Param("record"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"historie": entries, "aantal": len(entries)})
	}
}

// RecordVersie returns the full field map of one exact version.
func RecordVersie(svc *historie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		versie, err := strconv.Atoi(c.Param("versie"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "versie moet een getal zijn"})
			return
		}
		data, err := svc.VersionSnapshot(c.Request.Context(), c.Param("tabel"), c.Param("record"), versie)
		if errors.Is(err, historie.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "versie niet gevonden"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"tabel_naam": c.Param("tabel"),
			"record_id":  c.Param("record"),
			"versie":     versie,
			"data":       data,
		})
	}
}

// RecordCompare diffs two versions of one record.
func RecordCompare(svc *historie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		versie1, err1 := strconv.Atoi(c.Query("versie1"))
		versie2, err2 := strconv.Atoi(c.Query("versie2"))
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "versie1 en versie2 zijn verplicht"})
			return
		}
		diff, err := svc.Compare(c.Request.Context(), c.Param("tabel"), c.Param("record"), versie1, versie2)
		if errors.Is(err, historie.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "een of beide versies niet gevonden"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"tabel_naam":         c.Param("tabel"),
			"record_id":          c.Param("record"),
			"versie1":            versie1,
			"versie2":            versie2,
			"verschillen":        diff,
			"aantal_verschillen": len(diff),
		})
	}
}

// GebruikerActiviteit lists a user's recent changes (hard cap 200).
func GebruikerActiviteit(svc *historie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		entries, err := svc.UserActivity(c.Request.Context(), c.Param("id"), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"activiteit": entries})
	}
}

// TabelActiviteit lists a table's recent changes (hard cap 500).
func TabelActiviteit(svc *historie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		entries, err := svc.TableActivity(c.Request.Context(), c.Param("tabel"), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"activiteit": entries})
	}
}

// RecenteWijzigingen lists all changes within a bounded lookback window,
// optionally filtered on tabel_naam and actie. Unknown actie values are
// ignored rather than rejected.
func RecenteWijzigingen(svc *historie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		hours, _ := strconv.Atoi(c.DefaultQuery("hours", "24"))
		entries, err := svc.RecentChanges(c.Request.Context(), historie.RecentFilter{
			Hours:     hours,
			TabelNaam: c.Query("tabel_naam"),
			Actie:     c.Query("actie"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"wijzigingen": entries})
	}
}

// HistorieStats returns the overall historie statistics.
func HistorieStats(svc *historie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Statistics(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// TabelStats returns per-table historie statistics.
func TabelStats(svc *historie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.TableStatistics(c.Request.Context(), c.Param("tabel"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// RestoreVersie writes an old version's values back as a new version.
func RestoreVersie(svc *historie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		versie, err := strconv.Atoi(c.Param("versie"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "versie moet een getal zijn"})
			return
		}
		ctx := historie.WithNote(c.Request.Context(),
			"Hersteld naar versie "+c.Param("versie")+" via API")
		err = svc.Restore(ctx, c.Param("tabel"), c.Param("record"), versie)
		if errors.Is(err, historie.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "versie niet gevonden"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "hersteld", "versie": versie})
	}
}
