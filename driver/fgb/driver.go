package fgb

import (
	"encoding/json"
	"io/fs"
	"math"
	"os"
	"reflect"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/internal/tree"
	"github.com/tingold/orb-geometry/driver/memory"
)

// Reserved property names.
const (
	idKey          = "_id"
	seqKey         = "_seq"
	nodeKey        = "_node"
	crsKey         = "_crs"
	membersKey     = "_members"
	placeholderKey = "_placeholder"
)

var reserved = map[string]bool{
	idKey: true, seqKey: true, nodeKey: true, crsKey: true, membersKey: true, placeholderKey: true,
}

// Format describes the FlatGeobuf driver.
var Format = driver.Format{
	Identifier: "fgb",
	Name:       "FlatGeobuf",
	Version:    "3.0",
	Extensions: []string{".fgb"},
	Parameters: []driver.Parameter{
		{Identifier: "path", Name: "Path", Description: "layer file, created on first flush", Type: driver.TypeString, Conditions: []driver.Condition{driver.NotEmpty(), driver.HasExtension(".fgb")}},
		{Identifier: "name", Name: "Layer name", Type: driver.TypeString, Default: "geometries"},
		{Identifier: "description", Name: "Layer description", Type: driver.TypeString, Optional: true},
	},
}

// Driver is a memory driver persisted to a FlatGeobuf file. The file is
// read on Open and rewritten on Flush and Close.
type Driver struct {
	*memory.Driver

	path   string
	params driver.Parameters
	log    logrus.FieldLogger

	mu     sync.Mutex
	closed bool
}

var _ driver.FeatureDriver = (*Driver)(nil)

// Option configures a Driver.
type Option func(*Driver)

func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Driver) { d.log = log }
}

// Open validates params and loads the file at path when it exists.
func Open(params map[string]any, opts ...Option) (*Driver, error) {
	p, err := Format.Validate(params)
	if err != nil {
		return nil, err
	}
	d := &Driver{path: p.String("path"), params: p, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(d)
	}
	d.Driver = memory.New(memory.WithLogger(d.log))
	if err := d.load(); err != nil {
		return nil, err
	}
	d.log.WithFields(logrus.Fields{"path": d.path, "identifiers": d.Len()}).Info("opened flatgeobuf driver")
	return d, nil
}

func (d *Driver) Format() driver.Format { return Format }
func (d *Driver) Parameters() driver.Parameters { return d.params }

// Path returns the layer file.
func (d *Driver) Path() string { return d.path }

// UpdateAttribute rejects the property names the file layout reserves.
func (d *Driver) UpdateAttribute(identifier, key string, value any) error {
	if reserved[key] {
		return geometry.InvalidArgument("attribute key %q is reserved", key)
	}
	return d.Driver.UpdateAttribute(identifier, key, value)
}

// Close flushes and releases the documents. Closing twice is a no-op.
func (d *Driver) Close() error {
	if err := d.Flush(); err != nil {
		if errors.Is(err, driver.ErrClosed) {
			return nil
		}
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return d.Driver.Close()
}

// Flush writes every document to the file, replacing it atomically. An
// empty driver removes the file.
func (d *Driver) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return driver.ErrClosed
	}

	ids, err := d.GetIdentifiers()
	if err != nil {
		return err
	}
	fc := geojson.NewFeatureCollection()
	var (
		shared *geometry.ReferenceSystem
		agree  = true
	)
	for _, id := range ids {
		doc, err := d.Document(id)
		if errors.Is(err, driver.ErrIdentifierNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if len(fc.Features) == 0 {
			shared = doc.ReferenceSystem
		} else if !shared.Equal(doc.ReferenceSystem) {
			agree = false
		}
		fc.Append(documentFeature(id, len(fc.Features), doc))
	}

	if len(fc.Features) == 0 {
		if err := os.Remove(d.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return driver.NewConnectionError(d.path, err)
		}
		d.log.WithField("path", d.path).Debug("removed empty layer")
		return nil
	}

	opts := &Options{
		Name:         d.params.String("name"),
		Description:  d.params.String("description"),
		IncludeIndex: true,
	}
	if agree {
		opts.ReferenceSystem = shared
	}
	if err := d.write(fc, opts); err != nil {
		return driver.NewConnectionError(d.path, err)
	}
	d.log.WithFields(logrus.Fields{"path": d.path, "features": len(fc.Features)}).Debug("flushed layer")
	return nil
}

func (d *Driver) write(fc *geojson.FeatureCollection, opts *Options) error {
	tmp := d.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := WriteFeatures(f, fc, opts); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, d.path)
}

func (d *Driver) load() error {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return driver.NewConnectionError(d.path, err)
	}
	r, err := NewReaderFromData(data)
	if err != nil {
		return driver.NewConnectionError(d.path, err)
	}
	defer r.Close()

	var rs *geometry.ReferenceSystem
	if h := r.Header(); h != nil {
		rs = h.ReferenceSystem
	}
	fc, err := r.ReadAll()
	if err != nil {
		return driver.NewConnectionError(d.path, err)
	}

	loaded := make([]stored, 0, len(fc.Features))
	for i, f := range fc.Features {
		s, err := featureDocument(f, rs)
		if err != nil {
			return driver.NewConnectionError(d.path, errors.Wrapf(err, "feature %d", i))
		}
		if s.seq < 0 {
			s.seq = int64(len(fc.Features) + i)
		}
		loaded = append(loaded, s)
	}
	sort.SliceStable(loaded, func(i, j int) bool { return loaded[i].seq < loaded[j].seq })
	for _, s := range loaded {
		d.Put(s.id, s.doc)
	}
	return nil
}

type stored struct {
	id  string
	seq int64
	doc *tree.Document
}

// documentFeature lays out one document as a feature. The planar geometry
// is only a projection for other readers; the node tree is authoritative.
func documentFeature(id string, seq int, doc *tree.Document) *geojson.Feature {
	props := geojson.Properties{}
	for k, v := range doc.Attributes {
		props[k] = v
	}
	props[idKey] = id
	props[seqKey] = int64(seq)
	if doc.Root != nil {
		props[nodeKey] = doc.Root
	}
	if doc.ReferenceSystem != nil {
		props[crsKey] = doc.ReferenceSystem
	}
	if len(doc.Members) > 0 {
		props[membersKey] = doc.Members
	}

	g := planar(doc.Root)
	if g == nil {
		g = orb.Point{0, 0}
		props[placeholderKey] = true
	}
	f := geojson.NewFeature(g)
	f.Properties = props
	return f
}

// planar returns the orb form of n, or nil when it has no finite extent.
func planar(n *tree.Node) orb.Geometry {
	if n == nil {
		return nil
	}
	g, err := tree.Build(geometry.NewFactory(nil, nil), n)
	if err != nil || g.IsEmpty() {
		return nil
	}
	o, err := geometry.ToOrb(g)
	if err != nil || o == nil {
		return nil
	}
	b := o.Bound()
	for _, v := range []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	}
	return o
}

// featureDocument restores a document. Features written by other tools
// have no node property; their geometry is converted instead and they get
// a fresh identifier and the layer reference system.
func featureDocument(f *geojson.Feature, layerRS *geometry.ReferenceSystem) (stored, error) {
	s := stored{seq: -1, doc: &tree.Document{}}
	props := f.Properties

	if id, ok := props[idKey].(string); ok && id != "" {
		s.id = id
	} else {
		s.id = uuid.NewString()
	}
	if seq, ok := toInt64(props[seqKey]); ok {
		s.seq = seq
	}

	_, ours := props[idKey]
	switch {
	case props[nodeKey] != nil:
		s.doc.Root = &tree.Node{}
		if err := rejson(props[nodeKey], s.doc.Root); err != nil {
			return s, err
		}
	case props[placeholderKey] == true:
	case f.Geometry != nil:
		g, err := geometry.FromOrb(geometry.NewFactory(nil, layerRS), f.Geometry)
		if err != nil {
			return s, err
		}
		if s.doc.Root, err = tree.FromGeometry(g); err != nil {
			return s, err
		}
	}

	switch {
	case props[crsKey] != nil:
		s.doc.ReferenceSystem = &geometry.ReferenceSystem{}
		if err := rejson(props[crsKey], s.doc.ReferenceSystem); err != nil {
			return s, err
		}
	case !ours && layerRS != nil:
		c := *layerRS
		s.doc.ReferenceSystem = &c
	}

	if props[membersKey] != nil {
		if err := rejson(props[membersKey], &s.doc.Members); err != nil {
			return s, err
		}
	}

	for k, v := range props {
		if reserved[k] || v == nil {
			continue
		}
		s.doc.SetAttribute(k, normalize(v))
	}
	return s, nil
}

// rejson decodes a JSON column value, already parsed into generic form,
// into out.
func rejson(v any, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding property")
	}
	return errors.Wrap(json.Unmarshal(b, out), "decoding property")
}

// normalize widens fixed-size numbers so attributes read back with the
// types a JSON backed driver would hand out.
func normalize(v any) any {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case uint64:
		return n
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int64(rv.Uint())
	}
	return v
}
