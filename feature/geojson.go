package feature

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	geometry "github.com/tingold/orb-geometry"
)

// ToGeoJSON converts f to a GeoJSON feature. The identifier becomes the
// feature id and the attributes become its properties. Z values are
// dropped and a feature without geometry, or with an empty point, gets a
// null geometry.
func ToGeoJSON(f Feature) (*geojson.Feature, error) {
	if f == nil {
		return nil, geometry.ArgumentNull("feature")
	}
	g, err := f.Geometry()
	if err != nil {
		return nil, err
	}
	var og orb.Geometry
	if g != nil {
		if og, err = geometry.ToOrb(g); err != nil {
			return nil, err
		}
	}

	gf := geojson.NewFeature(og)
	gf.ID = f.Identifier()
	props, err := values(f.Attributes())
	if err != nil {
		return nil, err
	}
	for k, v := range props {
		gf.Properties[k] = v
	}
	return gf, nil
}

// ToGeoJSONCollection converts the members of c. The attributes of c
// itself become extra members of the collection object.
func ToGeoJSONCollection(c Collection) (*geojson.FeatureCollection, error) {
	if c == nil {
		return nil, geometry.ArgumentNull("collection")
	}
	members, err := c.Features()
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	for _, m := range members {
		gf, err := ToGeoJSON(m)
		if err != nil {
			return nil, err
		}
		fc.Append(gf)
	}

	props, err := values(c.Attributes())
	if err != nil {
		return nil, err
	}
	if len(props) > 0 {
		fc.ExtraMembers = geojson.Properties(props)
	}
	return fc, nil
}

// FromGeoJSON creates a feature from gf through c. Properties become
// attributes. The GeoJSON id is kept as the identifier by in-memory
// factories; stored factories allocate their own.
func FromGeoJSON(c Creator, gf *geojson.Feature) (Feature, error) {
	if c == nil {
		return nil, geometry.ArgumentNull("factory")
	}
	if gf == nil {
		return nil, geometry.ArgumentNull("feature")
	}

	var g geometry.Geometry
	if gf.Geometry != nil {
		var err error
		if g, err = geometry.FromOrb(c.GeometryFactory(), gf.Geometry); err != nil {
			return nil, err
		}
	}
	attrs := map[string]any(gf.Properties)

	if f, ok := c.(*Factory); ok && gf.ID != nil {
		if id := fmt.Sprint(gf.ID); id != "" {
			return f.CreateFeatureAt(id, g, attrs)
		}
	}
	return c.CreateFeature(g, attrs)
}

// FromGeoJSONCollection creates every feature of fc through c and a
// collection listing them.
func FromGeoJSONCollection(c Creator, fc *geojson.FeatureCollection) (Collection, error) {
	if c == nil {
		return nil, geometry.ArgumentNull("factory")
	}
	if fc == nil {
		return nil, geometry.ArgumentNull("feature collection")
	}
	features := make([]Feature, 0, len(fc.Features))
	for _, gf := range fc.Features {
		f, err := FromGeoJSON(c, gf)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return c.CreateCollection(features...)
}
