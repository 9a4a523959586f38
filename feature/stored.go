package feature

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/stored"
)

// StoredFactory creates features in a driver. The geometry of a feature
// lives at the root of the document of its identifier.
type StoredFactory struct {
	driver     driver.FeatureDriver
	geometries *stored.Factory
	log        logrus.FieldLogger
}

var _ Creator = (*StoredFactory)(nil)

// Option configures a StoredFactory.
type Option func(*StoredFactory)

// WithLogger sets the logger used for debug output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(f *StoredFactory) {
		if log != nil {
			f.log = log
		}
	}
}

// NewStoredFactory returns a factory writing to d. geometries must write
// to d as well; nil means a stored factory with the default precision and
// no reference system.
func NewStoredFactory(d driver.FeatureDriver, geometries *stored.Factory, opts ...Option) (*StoredFactory, error) {
	if d == nil {
		return nil, geometry.ArgumentNull("driver")
	}
	f := &StoredFactory{driver: d, geometries: geometries, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(f)
	}
	if f.geometries == nil {
		g, err := stored.NewFactory(d, nil, nil, stored.WithLogger(f.log))
		if err != nil {
			return nil, err
		}
		f.geometries = g
	}
	if f.geometries.Driver() != driver.GeometryDriver(d) {
		return nil, geometry.InvalidArgument("the geometry factory writes to another driver")
	}
	return f, nil
}

// Geometries returns the stored geometry factory.
func (f *StoredFactory) Geometries() *stored.Factory { return f.geometries }

// GeometryFactory returns an in-memory factory with the precision model
// and reference system of the stored one.
func (f *StoredFactory) GeometryFactory() geometry.Factory {
	return geometry.NewFactory(f.geometries.PrecisionModel(), f.geometries.ReferenceSystem())
}

func (f *StoredFactory) CreateFeature(g geometry.Geometry, attributes map[string]any) (Feature, error) {
	id, err := f.driver.CreateIdentifier()
	if err != nil {
		return nil, err
	}
	return f.CreateFeatureAt(id, g, attributes)
}

// CreateFeatureAt writes g and attributes to the existing identifier. A
// non-nil g replaces the geometry of the document and is always copied,
// even when it is stored on the same driver.
func (f *StoredFactory) CreateFeatureAt(identifier string, g geometry.Geometry, attributes map[string]any) (Feature, error) {
	if identifier == "" {
		return nil, geometry.ArgumentNull("identifier")
	}
	if rs := f.geometries.ReferenceSystem(); rs != nil {
		if err := f.driver.UpdateReferenceSystem(identifier, rs); err != nil {
			return nil, err
		}
	}
	if g != nil {
		c, err := f.GeometryFactory().CreateGeometry(g)
		if err != nil {
			return nil, err
		}
		if _, err := f.geometries.CloneGeometryAt(identifier, c); err != nil {
			return nil, err
		}
	}
	for k, v := range attributes {
		if err := f.driver.UpdateAttribute(identifier, k, v); err != nil {
			return nil, err
		}
	}
	f.log.WithFields(logrus.Fields{"identifier": identifier, "attributes": len(attributes)}).
		Debug("feature: created")
	return f.FeatureAt(identifier)
}

// FeatureAt returns the feature stored under identifier.
func (f *StoredFactory) FeatureAt(identifier string) (Feature, error) {
	if err := f.exists(identifier); err != nil {
		return nil, err
	}
	return f.feature(identifier), nil
}

func (f *StoredFactory) exists(identifier string) error {
	if identifier == "" {
		return geometry.ArgumentNull("identifier")
	}
	ok, err := f.driver.ContainsIdentifier(identifier)
	if err != nil {
		return err
	}
	if !ok {
		return driver.NotFound(identifier)
	}
	return nil
}

func (f *StoredFactory) feature(identifier string) *storedFeature {
	return &storedFeature{
		factory:    f,
		identifier: identifier,
		attributes: &storedAttributes{driver: f.driver, identifier: identifier},
	}
}

// CreateCollection creates a collection listing features. Features stored
// on the driver are referenced, the others are copied first.
func (f *StoredFactory) CreateCollection(features ...Feature) (Collection, error) {
	id, err := f.driver.CreateIdentifier()
	if err != nil {
		return nil, err
	}
	members := make([]string, 0, len(features))
	for _, m := range features {
		mid, err := f.member(m)
		if err != nil {
			return nil, err
		}
		members = append(members, mid)
	}
	if err := f.driver.UpdateCollectionMembers(id, members); err != nil {
		return nil, err
	}
	return f.CollectionAt(id)
}

// CollectionAt returns the collection stored under identifier. Any feature
// can be viewed as a collection; one without members is empty.
func (f *StoredFactory) CollectionAt(identifier string) (Collection, error) {
	if err := f.exists(identifier); err != nil {
		return nil, err
	}
	return &storedCollection{storedFeature: f.feature(identifier)}, nil
}

// DeleteFeature removes the document of identifier. Collections listing it
// keep a dangling member.
func (f *StoredFactory) DeleteFeature(identifier string) error {
	if identifier == "" {
		return geometry.ArgumentNull("identifier")
	}
	f.log.WithField("identifier", identifier).Debug("feature: deleted")
	return f.driver.DeleteIdentifier(identifier)
}

// member returns the identifier under which m is stored, copying it when
// it lives elsewhere.
func (f *StoredFactory) member(m Feature) (string, error) {
	if m == nil {
		return "", geometry.ArgumentNull("feature")
	}
	if s, ok := m.(*storedFeature); ok && s.factory.driver == f.driver {
		return s.identifier, nil
	}
	if s, ok := m.(*storedCollection); ok && s.factory.driver == f.driver {
		return s.identifier, nil
	}

	g, err := m.Geometry()
	if err != nil {
		return "", err
	}
	attrs, err := values(m.Attributes())
	if err != nil {
		return "", err
	}
	c, err := f.CreateFeature(g, attrs)
	if err != nil {
		return "", err
	}
	return c.Identifier(), nil
}

func values(a Attributes) (map[string]any, error) {
	keys, err := a.Keys()
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		v, ok, err := a.Get(k)
		if err != nil {
			return nil, err
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}

type storedFeature struct {
	factory    *StoredFactory
	identifier string
	attributes *storedAttributes
}

func (s *storedFeature) Identifier() string { return s.identifier }
func (s *storedFeature) Attributes() Attributes { return s.attributes }

// Geometry returns a stored handle on the root node, or nil when the
// document has no geometry.
func (s *storedFeature) Geometry() (geometry.Geometry, error) {
	g, err := s.factory.geometries.GeometryAt(s.identifier)
	if errors.Is(err, driver.ErrPathNotFound) {
		return nil, nil
	}
	return g, err
}

type storedCollection struct {
	*storedFeature
}

func (c *storedCollection) members() ([]string, error) {
	return c.factory.driver.ReadCollectionMembers(c.identifier)
}

func (c *storedCollection) Count() (int, error) {
	ids, err := c.members()
	return len(ids), err
}

func (c *storedCollection) At(i int) (Feature, error) {
	ids, err := c.members()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(ids) {
		return nil, geometry.ArgumentOutOfRange("index", i, len(ids))
	}
	return c.factory.FeatureAt(ids[i])
}

func (c *storedCollection) Features() ([]Feature, error) {
	ids, err := c.members()
	if err != nil {
		return nil, err
	}
	out := make([]Feature, 0, len(ids))
	for _, id := range ids {
		f, err := c.factory.FeatureAt(id)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (c *storedCollection) Add(f Feature) error {
	id, err := c.factory.member(f)
	if err != nil {
		return err
	}
	ids, err := c.members()
	if err != nil {
		return err
	}
	return c.factory.driver.UpdateCollectionMembers(c.identifier, append(ids, id))
}

func (c *storedCollection) Remove(f Feature) (bool, error) {
	if f == nil {
		return false, geometry.ArgumentNull("feature")
	}
	ids, err := c.members()
	if err != nil {
		return false, err
	}
	for i, id := range ids {
		if id == f.Identifier() {
			ids = append(ids[:i], ids[i+1:]...)
			return true, c.factory.driver.UpdateCollectionMembers(c.identifier, ids)
		}
	}
	return false, nil
}

type storedAttributes struct {
	driver     driver.AttributeDriver
	identifier string
}

func (a *storedAttributes) Count() (int, error) {
	m, err := a.driver.ReadAttributes(a.identifier)
	return len(m), err
}

func (a *storedAttributes) Keys() ([]string, error) {
	m, err := a.driver.ReadAttributes(a.identifier)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (a *storedAttributes) Get(key string) (any, bool, error) {
	return a.driver.ReadAttribute(a.identifier, key)
}

func (a *storedAttributes) Set(key string, value any) error {
	if key == "" {
		return geometry.ArgumentNull("key")
	}
	return a.driver.UpdateAttribute(a.identifier, key, value)
}

func (a *storedAttributes) Remove(key string) (bool, error) {
	return a.driver.DeleteAttribute(a.identifier, key)
}

func (a *storedAttributes) Clear() error {
	return a.driver.ClearAttributes(a.identifier)
}
