package listsrv

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/samthor/blocktree/blocklist"
	thoriter "github.com/samthor/blocktree/iter"
)

var jsonNull = json.RawMessage("null")

type hostedList struct {
	lock    sync.Mutex
	list    *blocklist.List[json.RawMessage]
	dropped bool
}

// Store holds named lists of JSON values.
// Each list is guarded by its own lock, as blocklist.List is not goroutine-safe.
type Store struct {
	opts blocklist.Options

	lock  sync.RWMutex
	lists map[string]*hostedList
}

// NewStore builds a Store whose lists are created with the given options, which may be nil.
func NewStore(opts *blocklist.Options) *Store {
	s := &Store{lists: map[string]*hostedList{}}
	if opts != nil {
		s.opts = *opts
	}
	return s
}

// Create adds a new empty list, returning its ID.
func (s *Store) Create() (id string) {
	id = uuid.NewString()
	hl := &hostedList{list: blocklist.New[json.RawMessage](&s.opts)}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.lists[id] = hl
	return id
}

// Has returns whether the list exists.
func (s *Store) Has(id string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	_, ok := s.lists[id]
	return ok
}

// Drop removes a list. Sockets still bound to it will fail on their next op.
func (s *Store) Drop(id string) bool {
	s.lock.Lock()
	hl := s.lists[id]
	delete(s.lists, id)
	s.lock.Unlock()

	if hl == nil {
		return false
	}
	hl.lock.Lock()
	defer hl.lock.Unlock()
	hl.drop()
	return true
}

// drop must be called with hl.lock held.
func (hl *hostedList) drop() {
	hl.dropped = true
	hl.list.Clear()
}

// Count returns the number of hosted lists.
func (s *Store) Count() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.lists)
}

// Apply runs a Request against the given list.
// Failures of the op itself, like a bad index, are reported in Response.Err; the error return is only for an unknown list.
func (s *Store) Apply(id string, req Request) (res Response, err error) {
	s.lock.RLock()
	hl := s.lists[id]
	s.lock.RUnlock()
	if hl == nil {
		return res, fmt.Errorf("%w: %q", ErrUnknownList, id)
	}

	hl.lock.Lock()
	defer hl.lock.Unlock()
	if hl.dropped {
		return res, fmt.Errorf("%w: %q", ErrUnknownList, id)
	}

	l := hl.list
	value := req.Value
	if len(value) == 0 {
		value = jsonNull
	}

	res.ID = req.ID
	var opErr error

	switch req.Op {
	case OpLen:
	case OpGet:
		res.Value, opErr = l.Get(req.Index)
	case OpSet:
		res.Value, opErr = l.Set(req.Index, value)
	case OpInsert:
		opErr = l.InsertAt(req.Index, value)
	case OpInsertFirst:
		l.InsertFirst(value)
	case OpInsertLast:
		l.InsertLast(value)
	case OpRemove:
		res.Value, opErr = l.RemoveAt(req.Index)
	case OpRemoveFirst:
		res.Value, opErr = l.RemoveFirst()
	case OpRemoveLast:
		res.Value, opErr = l.RemoveLast()
	case OpRange:
		limit := maxRange
		if req.Count > 0 {
			limit = min(req.Count, maxRange)
		}
		res.Values, opErr = thoriter.CollectErr(l.Iter(req.Index), limit)
	case OpDrop:
		s.lock.Lock()
		delete(s.lists, id)
		s.lock.Unlock()
		hl.drop()
	default:
		opErr = fmt.Errorf("%w: %q", ErrUnknownOp, req.Op)
	}

	res.Len = l.Len()
	if opErr != nil {
		res.Err = opErr.Error()
	}
	return res, nil
}
