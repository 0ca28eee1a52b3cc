// Package handler maps the HTTP surface onto the tracking service and
// repository. Every API-facing failure is reported as a uniform
// {success:false, message} body; callers inspect the success field, not the
// transport status.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"labtrack/internal/export"
	"labtrack/internal/metrics"
	"labtrack/internal/tracking"
)

type Handler struct {
	repo *tracking.Repository
	svc  *tracking.Service
}

func New(repo *tracking.Repository, svc *tracking.Service) *Handler {
	return &Handler{repo: repo, svc: svc}
}

// Mount registers all API routes on the group.
func (h *Handler) Mount(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/scan", h.Scan)
	rg.GET("/records", h.ListRecords)
	rg.DELETE("/records", h.DeleteAllRecords)
	rg.DELETE("/records/:id", h.DeleteRecord)
	rg.GET("/current_lab_status", h.CurrentLabStatus)
	rg.GET("/person/:id", h.GetPerson)
	rg.GET("/export/excel", h.ExportRecords)
	rg.GET("/export/current_status", h.ExportCurrentStatus)
}

func fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "message": message})
}

// ---------- Register ----------

type registerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "validation failed: "+err.Error())
		return
	}

	reg, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Department)
	if err != nil {
		if errors.Is(err, tracking.ErrDuplicateEmail) {
			fail(c, "Email already exists")
			return
		}
		fail(c, err.Error())
		return
	}

	metrics.Registrations.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"person_id": reg.PersonID,
		"qr_code":   reg.QRCode,
		"message":   "Person registered successfully",
	})
}

// ---------- Scan ----------

type scanRequest struct {
	QRContent string `json:"qr_content" binding:"required"`
	LabName   string `json:"lab_name"`
}

func (h *Handler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "validation failed: "+err.Error())
		return
	}

	result, err := h.svc.Scan(c.Request.Context(), req.QRContent, req.LabName)
	if err != nil {
		fail(c, err.Error())
		return
	}

	metrics.Scans.WithLabelValues(result.Action).Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"action":  result.Action,
		"person": gin.H{
			"name":  result.PersonName,
			"email": result.PersonEmail,
		},
		"lab_name":  result.LabName,
		"timestamp": result.Timestamp,
	})
}

// ---------- Listing ----------

func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.repo.ListRecords(c.Request.Context())
	if err != nil {
		fail(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) CurrentLabStatus(c *gin.Context) {
	occupants, err := h.repo.CurrentOccupants(c.Request.Context())
	if err != nil {
		fail(c, err.Error())
		return
	}
	exits, err := h.repo.LastExits(c.Request.Context())
	if err != nil {
		fail(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"current_occupants": occupants,
		"last_exits":        exits,
	})
}

func (h *Handler) GetPerson(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, "invalid person id")
		return
	}
	person, err := h.repo.GetPerson(c.Request.Context(), id)
	if err != nil {
		fail(c, err.Error())
		return
	}
	if person == nil {
		fail(c, fmt.Sprintf("No person found with ID: %d", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"person": gin.H{
			"id":         person.ID,
			"name":       person.Name,
			"email":      person.Email,
			"phone":      person.Phone,
			"department": person.Department,
		},
	})
}

// ---------- Deletion ----------

func (h *Handler) DeleteRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, "invalid record id")
		return
	}
	if err := h.repo.DeleteRecord(c.Request.Context(), id); err != nil {
		fail(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Record deleted successfully"})
}

func (h *Handler) DeleteAllRecords(c *gin.Context) {
	if err := h.repo.DeleteAllRecords(c.Request.Context()); err != nil {
		fail(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All records deleted successfully"})
}

// ---------- Exports ----------

func (h *Handler) ExportRecords(c *gin.Context) {
	rows, err := h.repo.ExportRows(c.Request.Context())
	if err != nil {
		fail(c, err.Error())
		return
	}
	now := time.Now()
	data, err := export.Records(rows, now)
	if err != nil {
		fail(c, err.Error())
		return
	}

	metrics.Exports.WithLabelValues("records").Inc()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.RecordsFilename(now)))
	c.Data(http.StatusOK, export.MIMEType, data)
}

func (h *Handler) ExportCurrentStatus(c *gin.Context) {
	rows, err := h.repo.StatusRows(c.Request.Context())
	if err != nil {
		fail(c, err.Error())
		return
	}
	now := time.Now()
	data, err := export.CurrentStatus(rows)
	if err != nil {
		fail(c, err.Error())
		return
	}

	metrics.Exports.WithLabelValues("current_status").Inc()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.StatusFilename(now)))
	c.Data(http.StatusOK, export.MIMEType, data)
}
