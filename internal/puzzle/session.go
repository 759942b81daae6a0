package puzzle

import (
	"errors"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"emotispell/internal/emotion"
	"emotispell/internal/models"
)

// State is the lifecycle position of one play-through.
type State string

const (
	StateNotStarted State = "not-started"
	StateInProgress State = "in-progress"
	StateCompleted  State = "completed"
)

var (
	ErrNotInProgress = errors.New("session is not in progress")
	ErrInvalidSlot   = errors.New("slot index out of range")
	ErrInvalidLetter = errors.New("letter must be a single character")
)

// Recorder receives the session's emotion and game events.
// Satisfied by service.IngestService.
type Recorder interface {
	RecordEmotion(childID, label, question string) (*models.EmotionSample, error)
	RecordGameReport(childID string, score int, emotions []string, question string, isCorrect bool) (*models.GameReport, error)
}

// Options tune a session. Zero values fall back to defaults.
type Options struct {
	Questions []string
	// AdvanceDelay is how long feedback stays on screen before the next
	// question appears or the slots clear for retry. Zero advances
	// immediately, which tests rely on.
	AdvanceDelay time.Duration
	// EmotionWindow caps the classifier ticks buffered per question.
	EmotionWindow int
}

// Session drives one child's play-through: shuffled question order,
// per-question letter scramble, slot fills, scoring and the open
// emotion buffer. It is owned by the child connection that created it
// and is never persisted. The mutex only serialises the delayed
// advance timer against the driving connection.
type Session struct {
	mu       sync.Mutex
	childID  string
	recorder Recorder

	questions []string
	delay     time.Duration
	window    int

	state     State
	order     []string
	index     int
	scrambled []string
	slots     []string
	score     int
	buffer    []string
	dominant  string

	// epoch invalidates pending advance timers when the question changes
	epoch int
	// awaiting is set between a full-slot evaluation and the scheduled
	// advance or retry reset; placements in that window are ignored so a
	// question is evaluated exactly once per fill.
	awaiting bool
}

// Snapshot is the transport-facing view of a session.
type Snapshot struct {
	State     State    `json:"state"`
	Question  int      `json:"question"`
	Total     int      `json:"total"`
	Letters   []string `json:"letters"`
	Slots     []string `json:"slots"`
	Score     int      `json:"score"`
	Dominant  string   `json:"dominant,omitempty"`
	WordLen   int      `json:"wordLength"`
	Completed bool     `json:"completed"`
}

// Outcome reports what a slot fill did.
type Outcome struct {
	Evaluated bool   `json:"evaluated"`
	Correct   bool   `json:"correct"`
	Dominant  string `json:"dominant,omitempty"`
	Score     int    `json:"score"`
	Completed bool   `json:"completed"`
}

// NewSession creates a session for one child. Call Start to begin.
func NewSession(childID string, recorder Recorder, opts Options) *Session {
	questions := opts.Questions
	if len(questions) == 0 {
		questions = DefaultQuestions
	}
	window := opts.EmotionWindow
	if window <= 0 {
		window = 4
	}
	return &Session{
		childID:   childID,
		recorder:  recorder,
		questions: questions,
		delay:     opts.AdvanceDelay,
		window:    window,
		state:     StateNotStarted,
	}
}

// Start shuffles the question set and enters the first question.
// Restarting an in-progress or completed session begins a fresh
// play-through.
func (s *Session) Start() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = make([]string, len(s.questions))
	copy(s.order, s.questions)
	rand.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})

	s.state = StateInProgress
	s.index = 0
	s.score = 0
	s.enterQuestion()
	return s.snapshotLocked()
}

// enterQuestion sets up scramble, slots and buffer for s.order[s.index].
// Caller holds the lock.
func (s *Session) enterQuestion() {
	word := s.order[s.index]
	s.scrambled = scramble(word)
	s.slots = make([]string, utf8.RuneCountInString(word))
	s.buffer = nil
	s.dominant = ""
	s.awaiting = false
	s.epoch++
}

// scramble returns the word's letters in a random order that differs
// from the canonical spelling whenever the word has at least two
// distinct letters.
func scramble(word string) []string {
	letters := strings.Split(word, "")
	if len(letters) < 2 {
		return letters
	}

	distinct := false
	for _, l := range letters[1:] {
		if l != letters[0] {
			distinct = true
			break
		}
	}

	for {
		rand.Shuffle(len(letters), func(i, j int) {
			letters[i], letters[j] = letters[j], letters[i]
		})
		if !distinct || strings.Join(letters, "") != word {
			return letters
		}
	}
}

// Tick buffers one classifier label for the in-progress question. The
// buffer is bounded; ticks past the window are ignored until the next
// question begins.
func (s *Session) Tick(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if !models.IsKnownLabel(label) {
		return errors.New("unknown emotion label: " + label)
	}
	if len(s.buffer) < s.window {
		s.buffer = append(s.buffer, label)
	}
	return nil
}

// PlaceLetter fills a slot. Once every slot is filled the concatenated
// letters are checked against the target word, the emotion buffer is
// aggregated, and both results are recorded through the gateway.
// A completed session ignores further placements.
func (s *Session) PlaceLetter(letter string, slot int) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateCompleted {
		return Outcome{Score: s.score, Completed: true}, nil
	}
	if s.state != StateInProgress {
		return Outcome{}, ErrNotInProgress
	}
	if s.awaiting {
		return Outcome{Score: s.score}, nil
	}
	if utf8.RuneCountInString(letter) != 1 {
		return Outcome{}, ErrInvalidLetter
	}
	if slot < 0 || slot >= len(s.slots) {
		return Outcome{}, ErrInvalidSlot
	}

	s.slots[slot] = letter

	for _, filled := range s.slots {
		if filled == "" {
			return Outcome{Score: s.score}, nil
		}
	}

	return s.evaluateLocked(), nil
}

// evaluateLocked runs the full-slot evaluation. Caller holds the lock.
func (s *Session) evaluateLocked() Outcome {
	word := s.order[s.index]
	correct := strings.Join(s.slots, "") == word

	s.resolveDominantLocked(word)

	emotions := make([]string, len(s.buffer))
	copy(emotions, s.buffer)

	score := s.score
	if correct {
		score++
		s.score = score
	}

	if _, err := s.recorder.RecordGameReport(s.childID, score, emotions, word, correct); err != nil {
		log.Printf("puzzle: failed to record game report for child %s: %v", s.childID, err)
	}

	outcome := Outcome{
		Evaluated: true,
		Correct:   correct,
		Dominant:  s.dominant,
		Score:     score,
	}

	if correct && score >= len(s.order) {
		s.state = StateCompleted
		s.epoch++
		outcome.Completed = true
		return outcome
	}

	if correct {
		s.scheduleLocked(func() {
			s.index++
			s.enterQuestion()
		})
	} else {
		s.scheduleLocked(func() {
			s.slots = make([]string, len(s.slots))
		})
	}

	return outcome
}

// resolveDominantLocked aggregates the buffer once per question and
// submits the resulting label. The cached value keeps the question's
// affect styling stable after the first resolution.
func (s *Session) resolveDominantLocked(word string) {
	if s.dominant != "" || len(s.buffer) == 0 {
		return
	}

	label, err := emotion.Dominant(s.buffer)
	if err != nil {
		return
	}
	s.dominant = label

	if _, err := s.recorder.RecordEmotion(s.childID, label, word); err != nil {
		log.Printf("puzzle: failed to record emotion for child %s: %v", s.childID, err)
	}
}

// scheduleLocked runs fn after the advance delay, unless the question
// has moved on in the meantime. With no delay it runs inline.
func (s *Session) scheduleLocked(fn func()) {
	if s.delay <= 0 {
		fn()
		return
	}

	s.awaiting = true
	epoch := s.epoch
	time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state != StateInProgress || s.epoch != epoch {
			return
		}
		fn()
		s.awaiting = false
	})
}

// Snapshot returns the current transport-facing view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		State:     s.state,
		Question:  s.index,
		Total:     len(s.order),
		Score:     s.score,
		Dominant:  s.dominant,
		Completed: s.state == StateCompleted,
	}
	if s.state == StateInProgress {
		snapshot.Letters = append([]string(nil), s.scrambled...)
		snapshot.Slots = append([]string(nil), s.slots...)
		snapshot.WordLen = len(s.slots)
	}
	return snapshot
}
