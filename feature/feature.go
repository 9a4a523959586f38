// Package feature attaches attributes to geometries. A Feature is an
// identified geometry with key/value attributes, and a Collection is a
// feature that also lists member features.
//
// Factory keeps features in memory. StoredFactory keeps them in a
// driver.FeatureDriver, with the geometry at the root of the document of
// the feature identifier.
package feature

import (
	"sort"

	"github.com/google/uuid"

	geometry "github.com/tingold/orb-geometry"
)

// Attributes is a set of key/value pairs. Values are whatever the JSON
// encoding of a store can represent.
type Attributes interface {
	Count() (int, error)
	// Keys returns the keys in lexical order.
	Keys() ([]string, error)
	Get(key string) (any, bool, error)
	Set(key string, value any) error
	Remove(key string) (bool, error)
	Clear() error
}

// Feature is an identified geometry with attributes.
type Feature interface {
	Identifier() string
	// Geometry returns nil when the feature has none.
	Geometry() (geometry.Geometry, error)
	Attributes() Attributes
}

// Collection is a feature listing member features in insertion order.
type Collection interface {
	Feature
	Count() (int, error)
	At(i int) (Feature, error)
	Features() ([]Feature, error)
	Add(f Feature) error
	// Remove removes the first member with the identifier of f.
	Remove(f Feature) (bool, error)
}

// Creator is implemented by Factory and StoredFactory.
type Creator interface {
	// GeometryFactory creates the in-memory geometries handed to
	// CreateFeature.
	GeometryFactory() geometry.Factory
	CreateFeature(g geometry.Geometry, attributes map[string]any) (Feature, error)
	CreateCollection(features ...Feature) (Collection, error)
}

type memoryAttributes struct {
	values map[string]any
}

// NewAttributes returns in-memory attributes holding a copy of values.
func NewAttributes(values map[string]any) Attributes {
	a := &memoryAttributes{values: make(map[string]any, len(values))}
	for k, v := range values {
		a.values[k] = v
	}
	return a
}

func (a *memoryAttributes) Count() (int, error) { return len(a.values), nil }

func (a *memoryAttributes) Keys() ([]string, error) {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (a *memoryAttributes) Get(key string) (any, bool, error) {
	v, ok := a.values[key]
	return v, ok, nil
}

func (a *memoryAttributes) Set(key string, value any) error {
	if key == "" {
		return geometry.ArgumentNull("key")
	}
	a.values[key] = value
	return nil
}

func (a *memoryAttributes) Remove(key string) (bool, error) {
	_, ok := a.values[key]
	delete(a.values, key)
	return ok, nil
}

func (a *memoryAttributes) Clear() error {
	a.values = make(map[string]any)
	return nil
}

type memoryFeature struct {
	identifier string
	geometry   geometry.Geometry
	attributes Attributes
}

func (f *memoryFeature) Identifier() string { return f.identifier }
func (f *memoryFeature) Geometry() (geometry.Geometry, error) { return f.geometry, nil }
func (f *memoryFeature) Attributes() Attributes { return f.attributes }

type memoryCollection struct {
	memoryFeature
	members []Feature
}

func (c *memoryCollection) Count() (int, error) { return len(c.members), nil }

func (c *memoryCollection) At(i int) (Feature, error) {
	if i < 0 || i >= len(c.members) {
		return nil, geometry.ArgumentOutOfRange("index", i, len(c.members))
	}
	return c.members[i], nil
}

func (c *memoryCollection) Features() ([]Feature, error) {
	return append([]Feature(nil), c.members...), nil
}

func (c *memoryCollection) Add(f Feature) error {
	if f == nil {
		return geometry.ArgumentNull("feature")
	}
	c.members = append(c.members, f)
	return nil
}

func (c *memoryCollection) Remove(f Feature) (bool, error) {
	if f == nil {
		return false, geometry.ArgumentNull("feature")
	}
	for i, m := range c.members {
		if m.Identifier() == f.Identifier() {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Factory creates in-memory features. Geometries are copied through its
// geometry factory.
type Factory struct {
	geometries geometry.Factory
}

var _ Creator = (*Factory)(nil)

// NewFactory returns a factory copying geometries through f. A nil f
// means a default in-memory geometry factory.
func NewFactory(f geometry.Factory) *Factory {
	if f == nil {
		f = geometry.NewFactory(nil, nil)
	}
	return &Factory{geometries: f}
}

func (f *Factory) GeometryFactory() geometry.Factory { return f.geometries }

// CreateFeature creates a feature with a new random identifier.
func (f *Factory) CreateFeature(g geometry.Geometry, attributes map[string]any) (Feature, error) {
	return f.CreateFeatureAt(uuid.NewString(), g, attributes)
}

func (f *Factory) CreateFeatureAt(identifier string, g geometry.Geometry, attributes map[string]any) (Feature, error) {
	ft, err := f.feature(identifier, g, attributes)
	if err != nil {
		return nil, err
	}
	return ft, nil
}

func (f *Factory) feature(identifier string, g geometry.Geometry, attributes map[string]any) (*memoryFeature, error) {
	if identifier == "" {
		return nil, geometry.ArgumentNull("identifier")
	}
	if g != nil {
		c, err := f.geometries.CreateGeometry(g)
		if err != nil {
			return nil, err
		}
		g = c
	}
	return &memoryFeature{identifier: identifier, geometry: g, attributes: NewAttributes(attributes)}, nil
}

// CreateCollection creates a collection without geometry or attributes
// listing features.
func (f *Factory) CreateCollection(features ...Feature) (Collection, error) {
	ft, err := f.feature(uuid.NewString(), nil, nil)
	if err != nil {
		return nil, err
	}
	c := &memoryCollection{memoryFeature: *ft}
	for _, m := range features {
		if err := c.Add(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}
