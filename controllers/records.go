package controllers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"aisolutions-backend/analytics"
	"aisolutions-backend/services"
	"aisolutions-backend/store"
	"aisolutions-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	maxGenerate = 100
	exportName  = "Filtered_AI_Data"
)

type RecordsController struct {
	Store  *store.CSVStore
	Ingest *services.IngestService
	Log    *slog.Logger
}

type listQuery struct {
	analytics.Filter
	Limit int `form:"limit,default=100" binding:"min=0"`
}

type generateQuery struct {
	Count int `form:"count,default=1" binding:"min=1,max=100"`
}

type exportQuery struct {
	analytics.Filter
	Format string `form:"format,default=csv" binding:"oneof=csv xlsx"`
}

// List returns the newest matching records, oldest of them first.
func (rc *RecordsController) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	all, _, ok := readStore(c, rc.Store, rc.Log)
	if !ok {
		return
	}

	recs := q.Filter.Apply(all)
	total := len(recs)
	if q.Limit > 0 && len(recs) > q.Limit {
		recs = recs[len(recs)-q.Limit:]
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"records": recs,
	})
}

func (rc *RecordsController) Generate(c *gin.Context) {
	var q generateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, fmt.Sprintf("count must be between 1 and %d", maxGenerate))
		return
	}

	recs, err := rc.Ingest.RunBatch(c.Request.Context(), q.Count)
	if err != nil && recs == nil {
		rc.Log.Error("generate batch", "err", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate records")
		return
	}
	if err != nil {
		// Stored in the CSV, but the database mirror rejected it.
		rc.Log.Warn("generate batch partially stored", "err", err)
	}
	c.JSON(http.StatusCreated, gin.H{
		"count":   len(recs),
		"records": recs,
	})
}

func (rc *RecordsController) Export(c *gin.Context) {
	var q exportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid format (use csv or xlsx)")
		return
	}
	all, _, ok := readStore(c, rc.Store, rc.Log)
	if !ok {
		return
	}
	recs := q.Filter.Apply(all)

	var (
		data        []byte
		contentType string
	)
	switch q.Format {
	case "xlsx":
		x, err := store.ExportXLSX(recs)
		if err != nil {
			rc.Log.Error("export xlsx", "err", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to export data")
			return
		}
		data = x
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		var buf bytes.Buffer
		if err := store.WriteCSV(&buf, recs); err != nil {
			rc.Log.Error("export csv", "err", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to export data")
			return
		}
		data = buf.Bytes()
		contentType = "text/csv; charset=utf-8"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName+"."+q.Format))
	c.Data(http.StatusOK, contentType, data)
}
