package types

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Owner is the object, class instance, or class-level static holder a member
// belongs to. Memoized member values live in the owner's Slots.
type Owner interface {
	Slots() *Slots
}

// Token identifies one member declaration. Two declarations that share a name
// still get distinct tokens, so their memo slots never collide.
type Token uuid.UUID

// NewToken returns a fresh UUID v7 token, falling back to v4 when the v7
// clock source fails.
func NewToken() Token {
	id, err := uuid.NewV7()
	if err != nil {
		return Token(uuid.New())
	}
	return Token(id)
}

// IsZero reports whether t is the zero token.
func (t Token) IsZero() bool {
	return t == Token(uuid.Nil)
}

// String returns the canonical UUID form of t.
func (t Token) String() string {
	return uuid.UUID(t).String()
}

// Slots holds an owner's memo slots keyed by declaration Token. The zero
// value is ready to use.
//
// Fills of one slot are serialized, so concurrent first reads evaluate an
// initializer once. A read of a slot from inside its own fill fails with
// ErrReentrantRead instead of waiting on itself. A write that lands while a
// fill is running wins over the fill's result. The table lock is held only to
// find or create a slot.
type Slots struct {
	mu      sync.Mutex
	entries map[Token]*slot
}

type slot struct {
	busy   sync.Mutex // held for the duration of a fill
	mu     sync.Mutex // guards the fields below
	filled bool
	value  any
	filler uint64 // goroutine running the fill, 0 when idle
}

// NewSlots returns an empty slot table.
func NewSlots() *Slots {
	return &Slots{}
}

func (s *Slots) get(t Token) *slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		s.entries = make(map[Token]*slot)
	}
	sl, ok := s.entries[t]
	if !ok {
		sl = &slot{}
		s.entries[t] = sl
	}
	return sl
}

func (s *Slots) peek(t Token) (*slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.entries[t]
	return sl, ok
}

// Load returns the value stored for t and whether the slot is populated.
func (s *Slots) Load(t Token) (any, bool) {
	sl, ok := s.peek(t)
	if !ok {
		return nil, false
	}
	return sl.load()
}

func (sl *slot) load() (any, bool) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.value, sl.filled
}

// LoadOrFill returns the value stored for t. When the slot is empty it calls
// fill and stores the result. A fill error is returned as is and leaves the
// slot empty. A call made by fill itself, directly or through other members,
// returns ErrReentrantRead.
func (s *Slots) LoadOrFill(t Token, fill func() (any, error)) (any, error) {
	sl := s.get(t)
	if v, ok := sl.load(); ok {
		return v, nil
	}

	id := goroutineID()
	sl.mu.Lock()
	reentrant := id != 0 && sl.filler == id
	sl.mu.Unlock()
	if reentrant {
		return nil, ErrReentrantRead
	}

	sl.busy.Lock()
	defer sl.busy.Unlock()

	sl.mu.Lock()
	if sl.filled {
		v := sl.value
		sl.mu.Unlock()
		return v, nil
	}
	sl.filler = id
	sl.mu.Unlock()

	v, err := fill()

	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.filler = 0
	if err != nil {
		return nil, err
	}
	if sl.filled {
		return sl.value, nil
	}
	sl.value, sl.filled = v, true
	return v, nil
}

// Store overwrites the value for t, populating the slot if needed.
func (s *Slots) Store(t Token, v any) {
	sl := s.get(t)
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.value, sl.filled = v, true
}

// Len returns the number of populated slots.
func (s *Slots) Len() int {
	s.mu.Lock()
	entries := make([]*slot, 0, len(s.entries))
	for _, sl := range s.entries {
		entries = append(entries, sl)
	}
	s.mu.Unlock()

	n := 0
	for _, sl := range entries {
		sl.mu.Lock()
		if sl.filled {
			n++
		}
		sl.mu.Unlock()
	}
	return n
}

// goroutineID parses the current goroutine's id from its stack header,
// "goroutine 18 [running]:".
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}
