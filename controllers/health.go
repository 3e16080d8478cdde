package controllers

import (
	"net/http"

	"aisolutions-backend/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	Store *store.CSVStore
	// DB is nil when the database mirror is disabled.
	DB *gorm.DB
}

func (h *HealthController) Health(c *gin.Context) {
	resp := gin.H{"status": "ok", "store": h.Store.Path()}

	rows, err := h.Store.Count()
	if err != nil {
		resp["status"] = "degraded"
		resp["storeError"] = err.Error()
	} else {
		resp["records"] = rows
	}

	if h.DB != nil {
		resp["database"] = "ok"
		sqlDB, err := h.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			resp["status"] = "degraded"
			resp["database"] = err.Error()
		}
	}

	status := http.StatusOK
	if resp["status"] != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
