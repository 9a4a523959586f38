package fgb

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// WriteFeatures writes fc as a FlatGeobuf layer. Features without a
// supported geometry are skipped; nil options mean DefaultOptions.
func WriteFeatures(w io.Writer, fc *geojson.FeatureCollection, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	if fc == nil {
		return ErrNoFeatures
	}

	features := make([]*geojson.Feature, 0, len(fc.Features))
	geoms := make([]orb.Geometry, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil || unsupported(f.Geometry) {
			continue
		}
		features = append(features, f)
		geoms = append(geoms, f.Geometry)
	}
	if len(features) == 0 {
		return ErrNoFeatures
	}

	b := flatbuffers.NewBuilder(4096)
	header := writer.NewHeader(b)
	header.SetGeometryType(layerType(geoms))
	if opts.Name != "" {
		header.SetName(opts.Name)
	}
	if opts.Description != "" {
		header.SetDescription(opts.Description)
	}

	s := inferSchema(features)
	if len(s.columns) > 0 {
		header.SetColumns(s.build(b))
	}
	if rs := opts.ReferenceSystem; rs != nil {
		crs := writer.NewCrs(b)
		if rs.Authority != "" {
			crs.SetOrg(rs.Authority)
		}
		if rs.Code > 0 {
			crs.SetCode(int32(rs.Code))
		}
		if rs.Name != "" {
			crs.SetName(rs.Name)
		}
		if rs.Description != "" {
			crs.SetDescription(rs.Description)
		}
		header.SetCrs(crs)
	}

	gen := &featureGenerator{features: features, schema: s}
	if _, err := writer.NewWriter(header, opts.IncludeIndex, gen, nil).Write(w); err != nil {
		return errors.Wrap(err, "writing flatgeobuf")
	}
	return nil
}

// unsupported reports whether g cannot be encoded.
func unsupported(g orb.Geometry) bool {
	if g == nil {
		return true
	}
	switch g.(type) {
	case orb.Point, orb.MultiPoint, orb.LineString, orb.MultiLineString,
		orb.Ring, orb.Polygon, orb.MultiPolygon, orb.Collection, orb.Bound:
		return false
	}
	return true
}

// featureGenerator feeds features to the writer one at a time, each with
// its own builder.
type featureGenerator struct {
	features []*geojson.Feature
	schema   *schema
	next     int
}

func (g *featureGenerator) Generate() *writer.Feature {
	if g.next >= len(g.features) {
		return nil
	}
	f := g.features[g.next]
	g.next++

	b := flatbuffers.NewBuilder(1024)
	out := writer.NewFeature(b)
	out.SetGeometry(encodeGeometry(f.Geometry, b))
	if props := g.schema.encode(f.Properties); len(props) > 0 {
		out.SetProperties(props)
	}
	return out
}
