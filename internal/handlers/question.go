package handlers

import (
	"net/http"

	"govforms/internal/models"
	"govforms/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuestionHandler struct {
	log       *zap.Logger
	questions repository.QuestionStore
}

func NewQuestionHandler(log *zap.Logger) *QuestionHandler {
	return &QuestionHandler{log: log}
}

func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questions.ListQuestions(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list questions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list questions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

type questionCondition struct {
	DependsOn string `json:"dependsOn" binding:"required"`
	Value     string `json:"value" binding:"required"`
}

type createQuestionRequest struct {
	Text      string             `json:"text" binding:"required"`
	Type      string             `json:"type" binding:"required"`
	Options   []string           `json:"options"`
	Required  bool               `json:"required"`
	Position  int                `json:"position"`
	Condition *questionCondition `json:"condition"`
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question text and type are required"})
		return
	}
	if !models.ValidQuestionType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown question type"})
		return
	}
	// Every kind except free-text presents a fixed option list.
	if req.Type != models.QuestionFreeText && len(req.Options) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Options are required for this question type"})
		return
	}

	question := &models.Question{
		Text:     req.Text,
		Type:     req.Type,
		Options:  req.Options,
		Required: req.Required,
		Position: req.Position,
	}
	if req.Condition != nil {
		question.DependsOn = req.Condition.DependsOn
		question.DependsValue = req.Condition.Value
	}

	if err := repository.CreateQuestion(c.Request.Context(), question); err != nil {
		h.log.Error("Failed to create question", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"question": question})
}
