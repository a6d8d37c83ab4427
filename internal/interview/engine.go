// Package interview implements the conditional multi-step interview
// flow: ordered question traversal with per-question visibility
// conditions, answer capture, persistence callbacks and
// completion/save transitions.
package interview

import (
	"context"
	"strings"

	"govforms/internal/models"

	"go.uber.org/zap"
)

// QuestionStore supplies the ordered question list. The order defines
// traversal order.
type QuestionStore interface {
	ListQuestions(ctx context.Context) ([]models.Question, error)
}

// SessionStore persists session lifecycle changes.
type SessionStore interface {
	CreateSession(ctx context.Context, info Interviewee) (string, error)
	UpdateSessionStatus(ctx context.Context, sessionID string, status Status) error
	UpdateSessionPosition(ctx context.Context, sessionID string, position int) error
}

// AnswerStore persists individual captured answers.
type AnswerStore interface {
	RecordAnswer(ctx context.Context, sessionID, questionID string, value Value) error
}

// PersistTask is an in-flight persistence attempt. Transitions never
// block on it; callers may Wait for the outcome or ignore it.
type PersistTask struct {
	done chan struct{}
	err  error
}

func newPersistTask() *PersistTask {
	return &PersistTask{done: make(chan struct{})}
}

// run executes fn and records its failure, if any, as a
// PersistenceWarning.
func (t *PersistTask) run(op string, fn func() error) {
	go func() {
		defer close(t.done)
		if err := fn(); err != nil {
			t.err = &PersistenceWarning{Op: op, Err: err}
		}
	}()
}

// Done is closed once the persistence attempt finished.
func (t *PersistTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the persistence attempt finished and returns its
// PersistenceWarning, or nil on success.
func (t *PersistTask) Wait() error {
	<-t.done
	return t.err
}

// StepResult reports the outcome of a navigation step. Warning, when
// set, is a PersistenceWarning: the in-memory transition happened but
// storage did not acknowledge it.
type StepResult struct {
	Advanced  bool
	Completed bool
	Warning   error
}

// Engine drives interview sessions over a fixed question list. The
// session is always an explicit argument; one engine can serve any
// number of independent sessions.
type Engine struct {
	questions []models.Question
	sessions  SessionStore
	answers   AnswerStore
	log       *zap.Logger
}

// NewEngine loads the question list and returns an engine bound to the
// given stores.
func NewEngine(ctx context.Context, qs QuestionStore, ss SessionStore, as AnswerStore, log *zap.Logger) (*Engine, error) {
	questions, err := qs.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{
		questions: questions,
		sessions:  ss,
		answers:   as,
		log:       log,
	}, nil
}

// Questions returns the full ordered question list.
func (e *Engine) Questions() []models.Question {
	return e.questions
}

// Start begins a new session for the given interviewee. The name must
// be non-blank.
func (e *Engine) Start(ctx context.Context, s *Session, info Interviewee) error {
	if strings.TrimSpace(info.Name) == "" {
		return validationErrorf("interviewee name required")
	}

	id, err := e.sessions.CreateSession(ctx, info)
	if err != nil {
		return err
	}

	s.ID = id
	s.Interviewee = info
	s.Position = 0
	s.Answers = make(map[string]Value)
	s.Status = StatusInProgress
	return nil
}

// ShouldShow evaluates a question's visibility against the session's
// answers. Questions without a condition are always visible; a
// conditional question shows only when the answer it depends on equals
// the expected value exactly. Multi-choice answers never satisfy a
// condition, even by membership.
func (e *Engine) ShouldShow(s *Session, q models.Question) bool {
	if !q.Conditional() {
		return true
	}
	answer, ok := s.Answer(q.DependsOn)
	return ok && answer.Equals(q.DependsValue)
}

// Visible returns the questions currently visible for the session.
func (e *Engine) Visible(s *Session) []models.Question {
	visible := make([]models.Question, 0, len(e.questions))
	for _, q := range e.questions {
		if e.ShouldShow(s, q) {
			visible = append(visible, q)
		}
	}
	return visible
}

// Current returns the question at the session's position, if any.
func (e *Engine) Current(s *Session) (models.Question, bool) {
	if s.Position < 0 || s.Position >= len(e.questions) {
		return models.Question{}, false
	}
	return e.questions[s.Position], true
}

// Answer captures a value for a question and kicks off its persistence.
// The in-memory answer is stored regardless of whether storage accepts
// it; a storage failure surfaces through the returned task as a
// PersistenceWarning.
func (e *Engine) Answer(ctx context.Context, s *Session, questionID string, value Value) (*PersistTask, error) {
	q, ok := e.question(questionID)
	if !ok {
		return nil, validationErrorf("unknown question %q", questionID)
	}
	if err := checkShape(q, value); err != nil {
		return nil, err
	}

	s.Answers[questionID] = value

	task := newPersistTask()
	sessionID := s.ID
	task.run("answer", func() error {
		return e.answers.RecordAnswer(ctx, sessionID, questionID, value)
	})
	return task, nil
}

// Next advances to the next visible question, skipping hidden ones. If
// the current question is visible, required and unanswered, it fails
// with a ValidationError and the position does not move. Advancing past
// the last visible question completes the session.
func (e *Engine) Next(ctx context.Context, s *Session) (StepResult, error) {
	if q, ok := e.Current(s); ok && e.ShouldShow(s, q) && q.Required {
		if answer, answered := s.Answer(q.ID); !answered || answer.Blank() {
			return StepResult{}, validationErrorf("answer required")
		}
	}

	for next := s.Position + 1; next < len(e.questions); next++ {
		if !e.ShouldShow(s, e.questions[next]) {
			continue
		}
		s.Position = next
		warning := e.persistPosition(ctx, s)
		return StepResult{Advanced: true, Warning: warning}, nil
	}

	// No visible question remains ahead.
	warning := e.Complete(ctx, s).Wait()
	return StepResult{Completed: true, Warning: warning}, nil
}

// Previous steps back to the closest earlier visible question. At the
// first visible question it is a no-op, not an error.
func (e *Engine) Previous(ctx context.Context, s *Session) StepResult {
	for prev := s.Position - 1; prev >= 0; prev-- {
		if !e.ShouldShow(s, e.questions[prev]) {
			continue
		}
		s.Position = prev
		warning := e.persistPosition(ctx, s)
		return StepResult{Advanced: true, Warning: warning}
	}
	return StepResult{}
}

// SaveProgress marks the session saved without touching position or
// answers, leaving it resumable.
func (e *Engine) SaveProgress(ctx context.Context, s *Session) *PersistTask {
	s.Status = StatusSaved

	task := newPersistTask()
	sessionID := s.ID
	task.run("save progress", func() error {
		return e.sessions.UpdateSessionStatus(ctx, sessionID, StatusSaved)
	})
	return task
}

// Complete persists the completed status and resets the in-memory
// session. The reset does not depend on persistence succeeding; a new
// Start is required either way.
func (e *Engine) Complete(ctx context.Context, s *Session) *PersistTask {
	sessionID := s.ID
	s.reset()

	task := newPersistTask()
	task.run("complete", func() error {
		return e.sessions.UpdateSessionStatus(ctx, sessionID, StatusCompleted)
	})
	return task
}

// persistPosition best-effort persists the navigation position and
// returns a PersistenceWarning on failure.
func (e *Engine) persistPosition(ctx context.Context, s *Session) error {
	if err := e.sessions.UpdateSessionPosition(ctx, s.ID, s.Position); err != nil {
		e.log.Warn("Failed to persist interview position",
			zap.String("interviewID", s.ID),
			zap.Int("position", s.Position),
			zap.Error(err))
		return &PersistenceWarning{Op: "position update", Err: err}
	}
	return nil
}

func (e *Engine) question(id string) (models.Question, bool) {
	for _, q := range e.questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

// checkShape validates a value against the question kind: set values
// for multi-choice, strings for everything else, and option membership
// where the question carries options. Free-text accepts anything.
func checkShape(q models.Question, v Value) error {
	switch q.Type {
	case models.QuestionMultiChoice:
		if !v.IsSet() {
			return validationErrorf("question %q expects a set of options", q.ID)
		}
		for _, member := range v.Members() {
			if !q.HasOption(member) {
				return validationErrorf("option %q is not valid for question %q", member, q.ID)
			}
		}
	case models.QuestionFreeText:
		if v.IsSet() {
			return validationErrorf("question %q expects a text answer", q.ID)
		}
	default:
		if v.IsSet() {
			return validationErrorf("question %q expects a single option", q.ID)
		}
		if !v.Blank() && len(q.Options) > 0 && !q.HasOption(v.Text()) {
			return validationErrorf("option %q is not valid for question %q", v.Text(), q.ID)
		}
	}
	return nil
}
