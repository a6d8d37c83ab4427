package interview

// Session status. A session starts NotStarted, moves to InProgress on
// Start, and ends Completed. Saved marks an interrupted session whose
// position is preserved for resume; navigation treats it like
// InProgress.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusSaved      Status = "saved"
	StatusCompleted  Status = "completed"
)

// Interviewee identifies the person being interviewed. Name is the only
// required piece.
type Interviewee struct {
	Name       string `json:"intervieweeName"`
	ExternalID string `json:"intervieweeId,omitempty"`
	Location   string `json:"location,omitempty"`
}

// Session is the state of one interview run. It is an explicit handle
// passed to every engine operation; the engine keeps no ambient session
// state of its own.
type Session struct {
	ID          string
	Interviewee Interviewee
	Position    int
	Answers     map[string]Value
	Status      Status
}

// NewSession returns an empty, not-yet-started session.
func NewSession() *Session {
	return &Session{
		Answers: make(map[string]Value),
		Status:  StatusNotStarted,
	}
}

// Answer returns the captured answer for questionID, if any.
func (s *Session) Answer(questionID string) (Value, bool) {
	v, ok := s.Answers[questionID]
	return v, ok
}

// reset clears the in-memory session after completion. A new Start is
// required for the next interview.
func (s *Session) reset() {
	s.ID = ""
	s.Position = 0
	s.Answers = make(map[string]Value)
	s.Status = StatusNotStarted
}
