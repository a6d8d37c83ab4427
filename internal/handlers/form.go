package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"govforms/internal/forms"
	"govforms/internal/models"
	"govforms/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FormHandler struct {
	log *zap.Logger
}

func NewFormHandler(log *zap.Logger) *FormHandler {
	return &FormHandler{log: log}
}

// Upload accepts a CSV source, analyzes its columns and returns the
// statistics plus a row sample for preview. Excel sources must be
// exported to CSV first.
func (h *FormHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload a CSV file."})
		return
	}

	result, err := forms.AnalyzeCSV(file, header.Filename)
	if err != nil {
		h.log.Error("Failed to analyze uploaded source", zap.Error(err), zap.String("filename", header.Filename))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to process file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

type generateFormRequest struct {
	SourceName string                   `json:"sourceName" binding:"required"`
	Columns    []forms.ColumnDescriptor `json:"columns" binding:"required"`
}

// Generate maps analyzed columns to a form definition without
// persisting it, so the designer can adjust fields before saving.
func (h *FormHandler) Generate(c *gin.Context) {
	var req generateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Source name and columns are required"})
		return
	}

	form := forms.GenerateForm(req.Columns, req.SourceName)
	c.JSON(http.StatusOK, gin.H{"form": form})
}

type createFormRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Fields      []forms.FormField  `json:"fields" binding:"required"`
	SourceFile  string             `json:"sourceFile"`
	Settings    forms.FormSettings `json:"settings"`
}

func (h *FormHandler) Create(c *gin.Context) {
	var req createFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and fields are required"})
		return
	}

	user, _ := c.Get("user")
	form := &models.Form{
		Title:                    req.Title,
		Description:              req.Description,
		Fields:                   req.Fields,
		SourceFile:               req.SourceFile,
		AllowMultipleSubmissions: req.Settings.AllowMultipleSubmissions,
		RequireAuthentication:    req.Settings.RequireAuthentication,
		CreatedByID:              user.(*models.User).ID,
	}

	if err := repository.CreateForm(c.Request.Context(), form); err != nil {
		h.log.Error("Failed to create form", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create form"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"form": form})
}

func (h *FormHandler) List(c *gin.Context) {
	formsList, err := repository.ListForms(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list forms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list forms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"forms": formsList})
}

func (h *FormHandler) Get(c *gin.Context) {
	form, err := repository.GetForm(c.Request.Context(), c.Param("formId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load form"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}
