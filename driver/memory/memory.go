// Package memory is the in-process driver. Documents live in a map guarded
// by a read/write mutex and are copied on every read and write.
package memory

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/internal/docstore"
	"github.com/tingold/orb-geometry/driver/internal/tree"
)

// Format describes the memory driver. It takes no parameters.
var Format = driver.Format{
	Identifier: "memory",
	Name:       "In-memory",
	Version:    "1.0",
}

// Driver keeps every document in memory. It implements driver.FeatureDriver.
type Driver struct {
	*docstore.Documents

	store  *store
	params driver.Parameters
}

var _ driver.FeatureDriver = (*Driver)(nil)

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for debug output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Driver) {
		d.Documents = docstore.New(d.store, log)
	}
}

// New returns an empty memory driver.
func New(opts ...Option) *Driver {
	s := &store{docs: make(map[string]*tree.Document)}
	d := &Driver{store: s, params: driver.Parameters{}, Documents: docstore.New(s, nil)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open validates params against Format and returns a new driver.
func Open(params map[string]any, opts ...Option) (*Driver, error) {
	p, err := Format.Validate(params)
	if err != nil {
		return nil, err
	}
	d := New(opts...)
	d.params = p
	return d, nil
}

func (d *Driver) Format() driver.Format { return Format }
func (d *Driver) Parameters() driver.Parameters { return d.params }

// Close releases every document. The driver stays usable.
func (d *Driver) Close() error {
	d.store.reset()
	return nil
}

// Document returns a copy of the document stored under identifier.
func (d *Driver) Document(identifier string) (*tree.Document, error) {
	return d.store.Load(identifier)
}

// Put stores a copy of doc under identifier, keeping the creation position
// of an existing identifier.
func (d *Driver) Put(identifier string, doc *tree.Document) {
	d.store.put(identifier, doc.Clone())
}

// Len returns the number of identifiers.
func (d *Driver) Len() int {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	return len(d.store.order)
}

type store struct {
	mu    sync.RWMutex
	docs  map[string]*tree.Document
	order []string
}

var _ docstore.Store = (*store)(nil)

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]*tree.Document)
	s.order = nil
}

func (s *store) put(id string, doc *tree.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		s.order = append(s.order, id)
	}
	s.docs[id] = doc
}

func (s *store) Create(id string) error {
	s.put(id, &tree.Document{})
	return nil
}

func (s *store) Contains(id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[id]
	return ok, nil
}

func (s *store) Identifiers() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.order...), nil
}

func (s *store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return driver.NotFound(id)
	}
	delete(s.docs, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *store) Load(id string) (*tree.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, driver.NotFound(id)
	}
	return doc.Clone(), nil
}

func (s *store) Update(id string, fn func(*tree.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return driver.NotFound(id)
	}
	next := doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.docs[id] = next
	return nil
}
