// Package docstore implements the driver contracts on top of any store that
// can load and atomically update tree documents by identifier.
package docstore

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/internal/tree"
)

// Store persists documents. Missing identifiers are reported with
// driver.NotFound and transport failures with driver.NewConnectionError.
type Store interface {
	// Create stores an empty document and records its creation order.
	Create(identifier string) error
	Contains(identifier string) (bool, error)
	// Identifiers lists identifiers in creation order.
	Identifiers() ([]string, error)
	Remove(identifier string) error
	// Load returns a copy of the document.
	Load(identifier string) (*tree.Document, error)
	// Update applies fn to the document and stores the result atomically.
	// Nothing is stored when fn fails.
	Update(identifier string, fn func(*tree.Document) error) error
}

// Documents implements the identifier, geometry, attribute and member
// operations of driver.FeatureDriver over a Store.
type Documents struct {
	store Store
	log   logrus.FieldLogger
}

// New returns the driver operations backed by s.
func New(s Store, log logrus.FieldLogger) *Documents {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Documents{store: s, log: log}
}

// Store returns the underlying store.
func (d *Documents) Store() Store { return d.store }

func (d *Documents) CreateIdentifier() (string, error) {
	id := uuid.NewString()
	if err := d.store.Create(id); err != nil {
		return "", err
	}
	d.log.WithField("identifier", id).Debug("created identifier")
	return id, nil
}

func (d *Documents) ContainsIdentifier(identifier string) (bool, error) {
	return d.store.Contains(identifier)
}

func (d *Documents) GetIdentifiers() ([]string, error) {
	return d.store.Identifiers()
}

func (d *Documents) DeleteIdentifier(identifier string) error {
	if err := d.store.Remove(identifier); err != nil {
		return err
	}
	d.log.WithField("identifier", identifier).Debug("deleted identifier")
	return nil
}

// located turns a path failure into a connection error naming the path.
func located(err error, identifier string, indexes []int) error {
	if err != nil && errors.Is(err, driver.ErrPathNotFound) && !errors.Is(err, driver.ErrConnection) {
		return driver.NewConnectionError(driver.Path(identifier, indexes...), err)
	}
	return err
}

func (d *Documents) read(identifier string, indexes []int, fn func(*tree.Document) error) error {
	doc, err := d.store.Load(identifier)
	if err != nil {
		return err
	}
	return located(fn(doc), identifier, indexes)
}

func (d *Documents) write(identifier string, indexes []int, fn func(*tree.Document) error) error {
	return located(d.store.Update(identifier, fn), identifier, indexes)
}

func (d *Documents) ReadReferenceSystem(identifier string) (*geometry.ReferenceSystem, error) {
	var rs *geometry.ReferenceSystem
	err := d.read(identifier, nil, func(doc *tree.Document) error {
		rs = doc.ReferenceSystem
		return nil
	})
	return rs, err
}

func (d *Documents) UpdateReferenceSystem(identifier string, rs *geometry.ReferenceSystem) error {
	return d.write(identifier, nil, func(doc *tree.Document) error {
		if rs == nil {
			doc.ReferenceSystem = nil
			return nil
		}
		c := *rs
		doc.ReferenceSystem = &c
		return nil
	})
}

func (d *Documents) ReadGeometryKind(identifier string, indexes ...int) (geometry.Kind, error) {
	k := geometry.KindUnknown
	err := d.read(identifier, indexes, func(doc *tree.Document) error {
		n, err := doc.Lookup(indexes...)
		if err != nil {
			return err
		}
		k = n.Kind
		return nil
	})
	return k, err
}

func (d *Documents) ReadGeometryCount(identifier string, indexes ...int) (int, error) {
	var count int
	err := d.read(identifier, indexes, func(doc *tree.Document) (err error) {
		count, err = doc.Count(indexes...)
		return err
	})
	return count, err
}

func (d *Documents) InsertGeometry(identifier string, kind geometry.Kind, indexes ...int) error {
	if kind == geometry.KindUnknown {
		return geometry.InvalidArgument("cannot insert a geometry of kind %v", kind)
	}
	return d.write(identifier, indexes, func(doc *tree.Document) error {
		return doc.Insert(kind, indexes...)
	})
}

func (d *Documents) DeleteGeometry(identifier string, indexes ...int) error {
	return d.write(identifier, indexes, func(doc *tree.Document) error {
		return doc.Delete(indexes...)
	})
}

func (d *Documents) ReadCoordinates(identifier string, indexes ...int) ([]geometry.Coordinate, error) {
	var cs []geometry.Coordinate
	err := d.read(identifier, indexes, func(doc *tree.Document) (err error) {
		cs, err = doc.Coordinates(indexes...)
		return err
	})
	return cs, err
}

func (d *Documents) UpdateCoordinates(identifier string, cs []geometry.Coordinate, indexes ...int) error {
	return d.write(identifier, indexes, func(doc *tree.Document) error {
		return doc.SetCoordinates(cs, indexes...)
	})
}

func (d *Documents) ReadAttributes(identifier string) (map[string]any, error) {
	out := map[string]any{}
	err := d.read(identifier, nil, func(doc *tree.Document) error {
		for k, v := range doc.Attributes {
			out[k] = v
		}
		return nil
	})
	return out, err
}

func (d *Documents) ReadAttribute(identifier, key string) (any, bool, error) {
	var (
		v  any
		ok bool
	)
	err := d.read(identifier, nil, func(doc *tree.Document) error {
		v, ok = doc.Attribute(key)
		return nil
	})
	return v, ok, err
}

func (d *Documents) UpdateAttribute(identifier, key string, value any) error {
	if key == "" {
		return geometry.ArgumentNull("attribute key")
	}
	return d.write(identifier, nil, func(doc *tree.Document) error {
		doc.SetAttribute(key, value)
		return nil
	})
}

func (d *Documents) DeleteAttribute(identifier, key string) (bool, error) {
	var removed bool
	err := d.write(identifier, nil, func(doc *tree.Document) error {
		removed = doc.DeleteAttribute(key)
		return nil
	})
	return removed, err
}

func (d *Documents) ClearAttributes(identifier string) error {
	return d.write(identifier, nil, func(doc *tree.Document) error {
		doc.Attributes = nil
		return nil
	})
}

func (d *Documents) ReadCollectionMembers(identifier string) ([]string, error) {
	var members []string
	err := d.read(identifier, nil, func(doc *tree.Document) error {
		members = append([]string{}, doc.Members...)
		return nil
	})
	return members, err
}

func (d *Documents) UpdateCollectionMembers(identifier string, members []string) error {
	return d.write(identifier, nil, func(doc *tree.Document) error {
		doc.Members = append([]string(nil), members...)
		return nil
	})
}
