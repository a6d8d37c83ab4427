package handlers

import (
	"errors"
	"net/http"

	"govforms/internal/interview"
	"govforms/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InterviewHandler struct {
	log       *zap.Logger
	questions repository.QuestionStore
	store     repository.InterviewStore
}

func NewInterviewHandler(log *zap.Logger) *InterviewHandler {
	return &InterviewHandler{log: log}
}

// engine builds a fresh engine against the current question list. The
// question list is read per request so designer edits apply to new
// sessions without a restart.
func (h *InterviewHandler) engine(c *gin.Context) (*interview.Engine, bool) {
	eng, err := interview.NewEngine(c.Request.Context(), h.questions, h.store, h.store, h.log)
	if err != nil {
		h.log.Error("Failed to load interview questions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load questions"})
		return nil, false
	}
	return eng, true
}

// session rehydrates the interview session addressed by the route.
func (h *InterviewHandler) session(c *gin.Context) (*interview.Session, bool) {
	s, err := repository.LoadSession(c.Request.Context(), c.Param("interviewId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Interview not found"})
			return nil, false
		}
		h.log.Error("Failed to load interview session", zap.Error(err), zap.String("interviewId", c.Param("interviewId")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load interview"})
		return nil, false
	}
	return s, true
}

func (h *InterviewHandler) Create(c *gin.Context) {
	var info interview.Interviewee
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interviewee payload"})
		return
	}

	eng, ok := h.engine(c)
	if !ok {
		return
	}

	s := interview.NewSession()
	if err := eng.Start(c.Request.Context(), s, info); err != nil {
		if interview.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("Failed to start interview", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start interview"})
		return
	}

	row, err := repository.GetInterview(c.Request.Context(), s.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load interview"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"interview": row})
}

func (h *InterviewHandler) List(c *gin.Context) {
	interviews, err := repository.ListInterviews(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list interviews", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list interviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"interviews": interviews})
}

func (h *InterviewHandler) Get(c *gin.Context) {
	row, err := repository.GetInterview(c.Request.Context(), c.Param("interviewId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Interview not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load interview"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"interview": row})
}

type answerRequest struct {
	QuestionID string          `json:"questionId" binding:"required"`
	Value      interview.Value `json:"value"`
}

// RecordAnswer captures one answer. A storage failure does not reject
// the answer; it comes back as a warning so the client can prompt a
// retry.
func (h *InterviewHandler) RecordAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question ID and value are required"})
		return
	}

	eng, ok := h.engine(c)
	if !ok {
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}

	task, err := eng.Answer(c.Request.Context(), s, req.QuestionID, req.Value)
	if err != nil {
		if interview.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record answer"})
		return
	}

	resp := gin.H{"questionId": req.QuestionID, "value": req.Value}
	if warning := task.Wait(); warning != nil {
		h.log.Warn("Answer stored in memory but persistence failed",
			zap.String("interviewId", s.ID),
			zap.String("questionId", req.QuestionID),
			zap.Error(warning))
		resp["warning"] = warning.Error()
	}
	c.JSON(http.StatusCreated, resp)
}

// Next advances the session to the next visible question, completing
// the interview when none remains.
func (h *InterviewHandler) Next(c *gin.Context) {
	eng, ok := h.engine(c)
	if !ok {
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}

	result, err := eng.Next(c.Request.Context(), s)
	if err != nil {
		if interview.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance interview"})
		return
	}

	c.JSON(http.StatusOK, h.stepResponse(eng, s, result))
}

func (h *InterviewHandler) Previous(c *gin.Context) {
	eng, ok := h.engine(c)
	if !ok {
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}

	result := eng.Previous(c.Request.Context(), s)
	c.JSON(http.StatusOK, h.stepResponse(eng, s, result))
}

type updateInterviewRequest struct {
	Status string `json:"status" binding:"required"`
}

// Update handles the save-for-later and complete transitions.
func (h *InterviewHandler) Update(c *gin.Context) {
	var req updateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	eng, ok := h.engine(c)
	if !ok {
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}

	var task *interview.PersistTask
	switch req.Status {
	case string(interview.StatusSaved):
		task = eng.SaveProgress(c.Request.Context(), s)
	case string(interview.StatusCompleted):
		task = eng.Complete(c.Request.Context(), s)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be 'saved' or 'completed'"})
		return
	}

	resp := gin.H{"status": req.Status}
	if warning := task.Wait(); warning != nil {
		h.log.Warn("Interview status transition not persisted",
			zap.String("interviewId", c.Param("interviewId")),
			zap.String("status", req.Status),
			zap.Error(warning))
		resp["warning"] = warning.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// stepResponse reports the session state after a navigation step,
// including the now-current question when the interview is still
// running.
func (h *InterviewHandler) stepResponse(eng *interview.Engine, s *interview.Session, result interview.StepResult) gin.H {
	resp := gin.H{
		"advanced":  result.Advanced,
		"completed": result.Completed,
		"position":  s.Position,
	}
	if result.Warning != nil {
		resp["warning"] = result.Warning.Error()
	}
	if !result.Completed {
		if q, ok := eng.Current(s); ok {
			resp["question"] = q
		}
	}
	return resp
}
