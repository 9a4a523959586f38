package geometry

import "fmt"

// ReferenceSystem describes the coordinate reference system of a geometry.
type ReferenceSystem struct {
	Code        int    `json:"code,omitempty"`        // Authority code (e.g., 4326 for WGS84)
	Authority   string `json:"authority,omitempty"`   // Code authority, usually "EPSG"
	Name        string `json:"name,omitempty"`        // Reference system name
	Description string `json:"description,omitempty"` // Free text or WKT description
	Dimension   int    `json:"dimension,omitempty"`   // Spatial dimension, 0 if unknown
}

// WGS84 returns the standard WGS84 reference system (EPSG:4326).
func WGS84() *ReferenceSystem {
	return &ReferenceSystem{
		Code:      4326,
		Authority: "EPSG",
		Name:      "WGS 84",
		Dimension: 2,
	}
}

// Equal reports whether both describe the same system. Two nil systems are
// equal; systems with an authority code are compared by authority and code.
func (rs *ReferenceSystem) Equal(other *ReferenceSystem) bool {
	if rs == nil || other == nil {
		return rs == other
	}
	if rs.Code != 0 || other.Code != 0 {
		return rs.Code == other.Code && rs.Authority == other.Authority
	}
	return *rs == *other
}

func (rs *ReferenceSystem) String() string {
	if rs == nil {
		return "<none>"
	}
	if rs.Code != 0 {
		return fmt.Sprintf("%s:%d", rs.Authority, rs.Code)
	}
	return rs.Name
}

func cloneReferenceSystem(rs *ReferenceSystem) *ReferenceSystem {
	if rs == nil {
		return nil
	}
	c := *rs
	return &c
}
