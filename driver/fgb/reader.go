package fgb

import (
	"github.com/cockroachdb/errors"
	flatgeobuf "github.com/flatgeobuf/flatgeobuf/src/go"
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	geometry "github.com/tingold/orb-geometry"
)

// Reader reads features from FlatGeobuf data.
type Reader struct {
	fgb *flatgeobuf.FlatGeoBuf
}

// NewReader opens the file at path.
func NewReader(path string) (*Reader, error) {
	f, err := flatgeobuf.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	return &Reader{fgb: f}, nil
}

// NewReaderFromData reads a file held in memory.
func NewReaderFromData(data []byte) (*Reader, error) {
	f, err := flatgeobuf.NewWithData(data)
	if err != nil {
		return nil, errors.Wrap(err, "reading flatgeobuf data")
	}
	return &Reader{fgb: f}, nil
}

// Header returns the layer metadata, or nil when the data has none.
func (r *Reader) Header() *Header {
	h := r.fgb.Header()
	if h == nil {
		return nil
	}
	out := &Header{
		Name:            string(h.Name()),
		Description:     string(h.Description()),
		GeometryType:    flattypes.EnumNamesGeometryType[h.GeometryType()],
		FeaturesCount:   h.FeaturesCount(),
		HasIndex:        h.IndexNodeSize() > 0,
		ReferenceSystem: referenceSystem(h),
	}
	if h.EnvelopeLength() >= 4 {
		out.Envelope = [4]float64{h.Envelope(0), h.Envelope(1), h.Envelope(2), h.Envelope(3)}
	}
	for i := 0; i < h.ColumnsLength(); i++ {
		var col flattypes.Column
		if !h.Columns(&col, i) {
			continue
		}
		out.Columns = append(out.Columns, ColumnInfo{
			Name:        string(col.Name()),
			Type:        flattypes.EnumNamesColumnType[col.Type()],
			Title:       string(col.Title()),
			Description: string(col.Description()),
			Nullable:    col.Nullable(),
		})
	}
	return out
}

// referenceSystem reads the header CRS. Files only carry the code, so a
// coded system is assumed to be an EPSG one.
func referenceSystem(h *flattypes.Header) *geometry.ReferenceSystem {
	var crs flattypes.Crs
	if h.Crs(&crs) == nil {
		return nil
	}
	rs := &geometry.ReferenceSystem{
		Code:        int(crs.Code()),
		Name:        string(crs.Name()),
		Description: string(crs.Description()),
	}
	if rs.Code > 0 {
		rs.Authority = "EPSG"
	}
	return rs
}

// ReadAll returns every feature. Features are only reachable through the
// spatial index, so a non-empty file without one yields ErrNoIndex.
func (r *Reader) ReadAll() (*geojson.FeatureCollection, error) {
	h := r.fgb.Header()
	if h == nil || h.FeaturesCount() == 0 {
		return geojson.NewFeatureCollection(), nil
	}
	if h.IndexNodeSize() == 0 || h.EnvelopeLength() < 4 {
		return nil, ErrNoIndex
	}
	return r.search(h, h.Envelope(0), h.Envelope(1), h.Envelope(2), h.Envelope(3))
}

// Search returns the features whose bounding box intersects b.
func (r *Reader) Search(b orb.Bound) (*geojson.FeatureCollection, error) {
	h := r.fgb.Header()
	if h == nil || h.IndexNodeSize() == 0 {
		return nil, ErrNoIndex
	}
	return r.search(h, b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}

func (r *Reader) search(h *flattypes.Header, minX, minY, maxX, maxY float64) (*geojson.FeatureCollection, error) {
	found, err := r.fgb.Search(minX, minY, maxX, maxY)
	if err != nil {
		return nil, errors.Wrap(err, "searching index")
	}
	fc := geojson.NewFeatureCollection()
	for _, f := range found {
		if feature := convertFeature(f, h); feature != nil {
			fc.Append(feature)
		}
	}
	return fc, nil
}

// Close drops the reference to the underlying data.
func (r *Reader) Close() error {
	r.fgb = nil
	return nil
}

func convertFeature(f *flattypes.Feature, h *flattypes.Header) *geojson.Feature {
	if f == nil {
		return nil
	}
	var g flattypes.Geometry
	feature := geojson.NewFeature(decodeGeometry(f.Geometry(&g)))

	if n := f.PropertiesLength(); n > 0 && h.ColumnsLength() > 0 {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(f.Properties(i))
		}
		feature.Properties = decodeProperties(data, h)
	}
	return feature
}
