package handlers

import (
	"errors"
	"net/http"

	"govforms/internal/models"
	"govforms/internal/repository"
	"govforms/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SheetHandler struct {
	log    *zap.Logger
	syncer *services.SheetSyncer
}

func NewSheetHandler(log *zap.Logger, syncer *services.SheetSyncer) *SheetHandler {
	return &SheetHandler{log: log, syncer: syncer}
}

func (h *SheetHandler) List(c *gin.Context) {
	conns, err := repository.ListSheetConnections(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list sheet connections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list connections"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connections": conns})
}

type sheetConnectionRequest struct {
	Name          string `json:"name" binding:"required"`
	SpreadsheetID string `json:"spreadsheetId" binding:"required"`
	SheetName     string `json:"sheetName" binding:"required"`
	AutoSync      bool   `json:"autoSync"`
}

func (h *SheetHandler) Create(c *gin.Context) {
	var req sheetConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, spreadsheet ID, and sheet name are required"})
		return
	}

	conn := &models.SheetConnection{
		Name:          req.Name,
		SpreadsheetID: req.SpreadsheetID,
		SheetName:     req.SheetName,
		AutoSync:      req.AutoSync,
	}
	if err := repository.CreateSheetConnection(c.Request.Context(), conn); err != nil {
		h.log.Error("Failed to create sheet connection", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create connection"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"connection": conn})
}

func (h *SheetHandler) Update(c *gin.Context) {
	var req sheetConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, spreadsheet ID, and sheet name are required"})
		return
	}

	id := c.Param("connectionId")
	if err := repository.UpdateSheetConnection(c.Request.Context(), id, req.Name, req.SpreadsheetID, req.SheetName, req.AutoSync); err != nil {
		h.log.Error("Failed to update sheet connection", zap.Error(err), zap.String("connectionId", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update connection"})
		return
	}

	conn, err := repository.GetSheetConnection(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Connection not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load connection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connection": conn})
}

func (h *SheetHandler) Delete(c *gin.Context) {
	id := c.Param("connectionId")
	if err := repository.DeleteSheetConnection(c.Request.Context(), id); err != nil {
		h.log.Error("Failed to delete sheet connection", zap.Error(err), zap.String("connectionId", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete connection"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Sync runs a manual export of completed interviews to the connection.
func (h *SheetHandler) Sync(c *gin.Context) {
	conn, err := repository.GetSheetConnection(c.Request.Context(), c.Param("connectionId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Connection not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load connection"})
		return
	}

	rows, err := h.syncer.Sync(c.Request.Context(), conn)
	if err != nil {
		h.log.Error("Sheet sync failed", zap.Error(err), zap.String("connection", conn.Name))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Sync failed", "rowsSynced": rows})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rowsSynced": rows})
}
