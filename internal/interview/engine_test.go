package interview

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"govforms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore implements QuestionStore, SessionStore and AnswerStore in
// memory, with switchable failures for persistence calls.
type fakeStore struct {
	questions []models.Question

	failAnswers  bool
	failStatus   bool
	failPosition bool

	nextID    int
	statuses  map[string]Status
	positions map[string]int
	answers   map[string]map[string]Value
}

func newFakeStore(questions ...models.Question) *fakeStore {
	return &fakeStore{
		questions: questions,
		statuses:  make(map[string]Status),
		positions: make(map[string]int),
		answers:   make(map[string]map[string]Value),
	}
}

func (f *fakeStore) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return f.questions, nil
}

func (f *fakeStore) CreateSession(ctx context.Context, info Interviewee) (string, error) {
	f.nextID++
	id := fmt.Sprintf("session-%d", f.nextID)
	f.statuses[id] = StatusInProgress
	return id, nil
}

func (f *fakeStore) UpdateSessionStatus(ctx context.Context, sessionID string, status Status) error {
	if f.failStatus {
		return errors.New("storage unavailable")
	}
	f.statuses[sessionID] = status
	return nil
}

func (f *fakeStore) UpdateSessionPosition(ctx context.Context, sessionID string, position int) error {
	if f.failPosition {
		return errors.New("storage unavailable")
	}
	f.positions[sessionID] = position
	return nil
}

func (f *fakeStore) RecordAnswer(ctx context.Context, sessionID, questionID string, value Value) error {
	if f.failAnswers {
		return errors.New("storage unavailable")
	}
	if f.answers[sessionID] == nil {
		f.answers[sessionID] = make(map[string]Value)
	}
	f.answers[sessionID][questionID] = value
	return nil
}

func question(id, qtype string, required bool, options ...string) models.Question {
	return models.Question{ID: id, Text: id, Type: qtype, Required: required, Options: options}
}

func conditional(q models.Question, dependsOn, value string) models.Question {
	q.DependsOn = dependsOn
	q.DependsValue = value
	return q
}

func newTestEngine(t *testing.T, store *fakeStore) *Engine {
	t.Helper()
	eng, err := NewEngine(context.Background(), store, store, store, zap.NewNop())
	require.NoError(t, err)
	return eng
}

func startSession(t *testing.T, eng *Engine) *Session {
	t.Helper()
	s := NewSession()
	require.NoError(t, eng.Start(context.Background(), s, Interviewee{Name: "Jane"}))
	return s
}

func TestStartRequiresIntervieweeName(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(question("q1", models.QuestionYesNo, true, "Yes", "No")))

	s := NewSession()
	err := eng.Start(context.Background(), s, Interviewee{Name: ""})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.EqualError(t, err, "interviewee name required")

	err = eng.Start(context.Background(), s, Interviewee{Name: "   "})
	assert.True(t, IsValidation(err))
}

func TestStartInitializesSession(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(question("q1", models.QuestionYesNo, true, "Yes", "No")))

	s := NewSession()
	require.NoError(t, eng.Start(context.Background(), s, Interviewee{Name: "Jane"}))

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 0, s.Position)
	assert.Empty(t, s.Answers)
	assert.Equal(t, StatusInProgress, s.Status)
}

func TestAnswerStoresInMemoryAndPersists(t *testing.T) {
	store := newFakeStore(question("q1", models.QuestionSingleChoice, true, "A", "B"))
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	task, err := eng.Answer(context.Background(), s, "q1", StringValue("A"))
	require.NoError(t, err)
	require.NoError(t, task.Wait())

	answer, ok := s.Answer("q1")
	require.True(t, ok)
	assert.Equal(t, "A", answer.Text())
	assert.Equal(t, "A", store.answers[s.ID]["q1"].Text())
}

func TestAnswerPersistenceFailureIsWarningNotError(t *testing.T) {
	store := newFakeStore(question("q1", models.QuestionSingleChoice, true, "A", "B"))
	store.failAnswers = true
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	task, err := eng.Answer(context.Background(), s, "q1", StringValue("A"))
	require.NoError(t, err)

	warning := task.Wait()
	require.Error(t, warning)
	assert.True(t, IsPersistenceWarning(warning))
	assert.False(t, IsValidation(warning))

	// The in-memory answer survives the storage failure.
	answer, ok := s.Answer("q1")
	require.True(t, ok)
	assert.Equal(t, "A", answer.Text())
}

func TestAnswerRejectsUnknownQuestionAndWrongShape(t *testing.T) {
	store := newFakeStore(
		question("q1", models.QuestionSingleChoice, true, "A", "B"),
		question("q2", models.QuestionMultiChoice, false, "X", "Y"),
	)
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	_, err := eng.Answer(context.Background(), s, "ghost", StringValue("A"))
	assert.True(t, IsValidation(err))

	_, err = eng.Answer(context.Background(), s, "q1", SetValue("A"))
	assert.True(t, IsValidation(err))

	_, err = eng.Answer(context.Background(), s, "q1", StringValue("C"))
	assert.True(t, IsValidation(err))

	_, err = eng.Answer(context.Background(), s, "q2", StringValue("X"))
	assert.True(t, IsValidation(err))

	_, err = eng.Answer(context.Background(), s, "q2", SetValue("X", "Z"))
	assert.True(t, IsValidation(err))
}

func TestNextBlocksOnRequiredUnanswered(t *testing.T) {
	store := newFakeStore(
		question("q1", models.QuestionSingleChoice, true, "A", "B"),
		question("q2", models.QuestionFreeText, false),
	)
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	_, err := eng.Next(context.Background(), s)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.EqualError(t, err, "answer required")
	assert.Equal(t, 0, s.Position)

	// A blank free-text answer does not satisfy a required question.
	task, err := eng.Answer(context.Background(), s, "q1", StringValue(""))
	require.NoError(t, err)
	task.Wait()
	_, err = eng.Next(context.Background(), s)
	assert.True(t, IsValidation(err))

	task, err = eng.Answer(context.Background(), s, "q1", StringValue("A"))
	require.NoError(t, err)
	task.Wait()

	result, err := eng.Next(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Advanced)
	assert.Equal(t, 1, s.Position)
}

func TestNextSkipsHiddenQuestions(t *testing.T) {
	store := newFakeStore(
		question("q1", models.QuestionSingleChoice, true, "A", "B"),
		conditional(question("q2", models.QuestionFreeText, false), "q1", "A"),
		question("q3", models.QuestionFreeText, false),
	)
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	task, err := eng.Answer(context.Background(), s, "q1", StringValue("B"))
	require.NoError(t, err)
	task.Wait()

	// q2 depends on q1 == "A"; with "B" it is skipped.
	result, err := eng.Next(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Advanced)
	assert.Equal(t, 2, s.Position)

	visible := eng.Visible(s)
	require.Len(t, visible, 2)
	assert.Equal(t, "q1", visible[0].ID)
	assert.Equal(t, "q3", visible[1].ID)
}

func TestConditionalLastQuestionCompletesDirectly(t *testing.T) {
	store := newFakeStore(
		question("q1", models.QuestionSingleChoice, true, "A", "B"),
		conditional(question("q2", models.QuestionFreeText, false), "q1", "A"),
	)
	eng := newTestEngine(t, store)
	s := startSession(t, eng)
	id := s.ID

	task, err := eng.Answer(context.Background(), s, "q1", StringValue("B"))
	require.NoError(t, err)
	task.Wait()

	// q1 is the only visible question, so advancing completes.
	result, err := eng.Next(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.NoError(t, result.Warning)
	assert.Equal(t, StatusCompleted, store.statuses[id])
}

func TestCompleteResetsSession(t *testing.T) {
	store := newFakeStore(question("q1", models.QuestionYesNo, true, "Yes", "No"))
	eng := newTestEngine(t, store)
	s := startSession(t, eng)
	id := s.ID

	task, err := eng.Answer(context.Background(), s, "q1", StringValue("Yes"))
	require.NoError(t, err)
	task.Wait()

	result, err := eng.Next(context.Background(), s)
	require.NoError(t, err)
	require.True(t, result.Completed)

	assert.Empty(t, s.ID)
	assert.Equal(t, 0, s.Position)
	assert.Empty(t, s.Answers)
	assert.Equal(t, StatusNotStarted, s.Status)
	assert.Equal(t, StatusCompleted, store.statuses[id])

	// A new run requires a fresh Start.
	require.NoError(t, eng.Start(context.Background(), s, Interviewee{Name: "Jane"}))
	assert.NotEqual(t, id, s.ID)
}

func TestCompletePersistenceFailureStillResets(t *testing.T) {
	store := newFakeStore(question("q1", models.QuestionYesNo, false, "Yes", "No"))
	store.failStatus = true
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	warning := eng.Complete(context.Background(), s).Wait()
	require.Error(t, warning)
	assert.True(t, IsPersistenceWarning(warning))
	assert.Empty(t, s.ID)
	assert.Empty(t, s.Answers)
}

func TestPreviousStopsAtFirstVisible(t *testing.T) {
	store := newFakeStore(
		question("q1", models.QuestionFreeText, false),
		conditional(question("q2", models.QuestionFreeText, false), "q1", "never"),
		question("q3", models.QuestionFreeText, false),
	)
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	// No-op at the front.
	result := eng.Previous(context.Background(), s)
	assert.False(t, result.Advanced)
	assert.Equal(t, 0, s.Position)

	s.Position = 2
	result = eng.Previous(context.Background(), s)
	assert.True(t, result.Advanced)
	// q2 is hidden, so stepping back from q3 lands on q1.
	assert.Equal(t, 0, s.Position)
}

func TestSaveProgressKeepsPositionAndAnswers(t *testing.T) {
	store := newFakeStore(
		question("q1", models.QuestionFreeText, false),
		question("q2", models.QuestionFreeText, false),
	)
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	task, err := eng.Answer(context.Background(), s, "q1", StringValue("some notes"))
	require.NoError(t, err)
	task.Wait()
	_, err = eng.Next(context.Background(), s)
	require.NoError(t, err)

	require.NoError(t, eng.SaveProgress(context.Background(), s).Wait())

	assert.Equal(t, StatusSaved, s.Status)
	assert.Equal(t, StatusSaved, store.statuses[s.ID])
	assert.Equal(t, 1, s.Position)
	assert.Len(t, s.Answers, 1)
}

func TestMultiChoiceToggle(t *testing.T) {
	store := newFakeStore(question("q1", models.QuestionMultiChoice, false, "X", "Y", "Z"))
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	// Toggle "X" on from no answer.
	current, _ := s.Answer("q1")
	task, err := eng.Answer(context.Background(), s, "q1", current.Toggle("X"))
	require.NoError(t, err)
	task.Wait()

	answer, ok := s.Answer("q1")
	require.True(t, ok)
	assert.Equal(t, []string{"X"}, answer.Members())

	// Toggle "X" off again: the answer is an empty set, not absent.
	task, err = eng.Answer(context.Background(), s, "q1", answer.Toggle("X"))
	require.NoError(t, err)
	task.Wait()

	answer, ok = s.Answer("q1")
	require.True(t, ok)
	assert.Empty(t, answer.Members())
	assert.True(t, answer.IsSet())
}

func TestMultiChoiceAnswerNeverSatisfiesCondition(t *testing.T) {
	store := newFakeStore(
		question("q1", models.QuestionMultiChoice, false, "A", "B"),
		conditional(question("q2", models.QuestionFreeText, false), "q1", "A"),
	)
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	task, err := eng.Answer(context.Background(), s, "q1", SetValue("A"))
	require.NoError(t, err)
	task.Wait()

	// Equality-only semantics: membership does not count.
	assert.False(t, eng.ShouldShow(s, store.questions[1]))
}

func TestPositionPersistenceFailureIsWarning(t *testing.T) {
	store := newFakeStore(
		question("q1", models.QuestionFreeText, false),
		question("q2", models.QuestionFreeText, false),
	)
	store.failPosition = true
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	result, err := eng.Next(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Advanced)
	assert.Equal(t, 1, s.Position)
	require.Error(t, result.Warning)
	assert.True(t, IsPersistenceWarning(result.Warning))
}

// A completed session handle is deliberately left unguarded: answering
// through it stores into the cleared in-memory map and persists against
// an empty session id. Callers are expected to Start a new session.
func TestAnswerAfterCompleteIsNotGuarded(t *testing.T) {
	store := newFakeStore(question("q1", models.QuestionYesNo, false, "Yes", "No"))
	eng := newTestEngine(t, store)
	s := startSession(t, eng)

	require.NoError(t, eng.Complete(context.Background(), s).Wait())
	require.Empty(t, s.ID)

	task, err := eng.Answer(context.Background(), s, "q1", StringValue("Yes"))
	require.NoError(t, err)
	task.Wait()

	answer, ok := s.Answer("q1")
	require.True(t, ok)
	assert.Equal(t, "Yes", answer.Text())
	// The persistence attempt ran against the cleared identifier.
	_, staleRecorded := store.answers[""]
	assert.True(t, staleRecorded)
}
