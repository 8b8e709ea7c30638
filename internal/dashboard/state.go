// Package dashboard models the client-observable state of the todo dashboard:
// the toast stack, the single inline edit buffer and the per-id in-flight
// flags the frontend must keep while requests are outstanding.
package dashboard

import (
	"sync"
	"time"
)

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
)

// Toast is one ephemeral notification. Index is its position in the visible
// stack and stays contiguous: removals re-pack the remaining toasts.
type Toast struct {
	ID      int64
	Type    ToastType
	Title   string
	Message string
	Index   int
}

// DefaultToastTTL matches the dashboard's 5 second auto-dismiss.
const DefaultToastTTL = 5 * time.Second

type State struct {
	mu sync.Mutex

	toastTTL    time.Duration
	nextToastID int64
	toasts      []Toast

	creating  bool
	editingID int64
	editing   bool
	editText  string

	toggling map[int64]bool
	deleting map[int64]bool
}

// NewState returns dashboard state with the given toast TTL. A zero TTL
// disables auto-expiry (tests drive removal explicitly).
func NewState(toastTTL time.Duration) *State {
	return &State{
		toastTTL: toastTTL,
		toggling: make(map[int64]bool),
		deleting: make(map[int64]bool),
	}
}

// PushToast appends a toast at the end of the stack and schedules its
// auto-removal. Every completed operation pushes exactly one.
func (s *State) PushToast(kind ToastType, title, message string) int64 {
	s.mu.Lock()
	s.nextToastID++
	id := s.nextToastID
	s.toasts = append(s.toasts, Toast{
		ID:      id,
		Type:    kind,
		Title:   title,
		Message: message,
		Index:   len(s.toasts),
	})
	ttl := s.toastTTL
	s.mu.Unlock()

	if ttl > 0 {
		time.AfterFunc(ttl, func() { s.RemoveToast(id) })
	}
	return id
}

// RemoveToast drops a toast and re-packs the indexes of the remaining ones so
// the stack shows no gaps. Removing an unknown id is a no-op.
func (s *State) RemoveToast(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	for i := range kept {
		kept[i].Index = i
	}
	s.toasts = kept
}

// Toasts returns a snapshot of the visible stack.
func (s *State) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// StartEditing opens the inline editor for a todo. At most one todo is
// editable at a time; a prior unsaved buffer is silently abandoned.
func (s *State) StartEditing(id int64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = true
	s.editingID = id
	s.editText = text
}

func (s *State) SetEditText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing {
		s.editText = text
	}
}

func (s *State) CancelEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = false
	s.editingID = 0
	s.editText = ""
}

// Editing reports the open edit buffer, if any.
func (s *State) Editing() (id int64, text string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID, s.editText, s.editing
}

// BeginCreate disables the add control for the duration of a create call.
func (s *State) BeginCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creating = true
}

func (s *State) EndCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creating = false
}

func (s *State) Creating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creating
}

// BeginToggle marks one id's toggle as in flight. Toggles on other ids stay
// enabled.
func (s *State) BeginToggle(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggling[id] = true
}

func (s *State) EndToggle(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.toggling, id)
}

func (s *State) Toggling(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggling[id]
}

func (s *State) BeginDelete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleting[id] = true
}

func (s *State) EndDelete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deleting, id)
}

func (s *State) Deleting(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleting[id]
}
