package geometry

import (
	"strconv"
	"strings"
)

// Text returns the textual representation of g, e.g.
//
//	POINT (1 2 3)
//	POLYGON ((0 0 0,4 0 0,4 4 0,0 4 0,0 0 0),(1 1 0,2 1 0,2 2 0,1 2 0,1 1 0))
//	GEOMETRYCOLLECTION (POINT (1 2 3),LINESTRING EMPTY)
//
// Numbers use the shortest decimal form that round trips and never depend
// on the locale. It works on any Geometry implementation.
//
// Members of MULTIPOINT, MULTILINESTRING and MULTIPOLYGON are written
// without their tag, as their kind is implied. A polygon with holes but an
// empty shell keeps its holes:
//
//	POLYGON (EMPTY,(1 1 0,2 1 0,2 2 0,1 1 0))
func Text(g Geometry) string {
	if g == nil {
		return ""
	}
	return string(AppendText(make([]byte, 0, 64), g))
}

// AppendText appends the textual representation of g to b.
func AppendText(b []byte, g Geometry) []byte {
	b = append(b, g.Kind().Tag()...)
	if isEmptyText(g) {
		return append(b, " EMPTY"...)
	}
	b = append(b, ' ')
	return appendBody(b, g)
}

// isEmptyText reports whether g is written as EMPTY. Collections are only
// empty when they have no members, so empty members are kept.
func isEmptyText(g Geometry) bool {
	switch g := g.(type) {
	case Point:
		return g.Coordinate().IsEmpty()
	case LineString:
		return g.Count() == 0
	case Polygon:
		return g.Shell().Count() == 0 && g.HoleCount() == 0
	case MultiPoint:
		return g.Count() == 0
	case MultiLineString:
		return g.Count() == 0
	case MultiPolygon:
		return g.Count() == 0
	case GeometryCollection:
		return g.Count() == 0
	}
	return g.IsEmpty()
}

func appendBody(b []byte, g Geometry) []byte {
	switch g := g.(type) {
	case Point:
		b = append(b, '(')
		b = g.Coordinate().appendText(b)
		return append(b, ')')
	case LineString:
		return appendCoordinates(b, g.Coordinates())
	case Polygon:
		b = append(b, '(')
		b = appendCoordinates(b, g.Shell().Coordinates())
		for _, h := range g.Holes() {
			b = append(b, ',')
			b = appendCoordinates(b, h.Coordinates())
		}
		return append(b, ')')
	case MultiPoint:
		return appendMembers(b, g.Geometries(), appendMember[Point])
	case MultiLineString:
		return appendMembers(b, g.Geometries(), appendMember[LineString])
	case MultiPolygon:
		return appendMembers(b, g.Geometries(), appendMember[Polygon])
	case GeometryCollection:
		return appendMembers(b, g.Geometries(), AppendText)
	}
	return append(b, "EMPTY"...)
}

func appendMember[T Geometry](b []byte, g T) []byte {
	if isEmptyText(g) {
		return append(b, "EMPTY"...)
	}
	return appendBody(b, g)
}

func appendMembers[T Geometry](b []byte, members []T, fn func([]byte, T) []byte) []byte {
	b = append(b, '(')
	for i, m := range members {
		if i > 0 {
			b = append(b, ',')
		}
		b = fn(b, m)
	}
	return append(b, ')')
}

func appendCoordinates(b []byte, cs []Coordinate) []byte {
	if len(cs) == 0 {
		return append(b, "EMPTY"...)
	}
	b = append(b, '(')
	for i, c := range cs {
		if i > 0 {
			b = append(b, ',')
		}
		b = c.appendText(b)
	}
	return append(b, ')')
}

// ParseText reads the textual representation produced by Text and creates
// the geometry through f. Coordinates with two values get Z = 0, and an
// optional Z marker after the tag is accepted.
func ParseText(f Factory, s string) (Geometry, error) {
	if f == nil {
		return nil, ArgumentNull("factory")
	}
	p := &textParser{s: s, f: f}
	g, err := p.geometry()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, p.errorf("unexpected trailing text %q", p.s[p.pos:])
	}
	return g, nil
}

type textParser struct {
	s   string
	pos int
	f   Factory
}

func (p *textParser) errorf(format string, args ...interface{}) error {
	return InvalidArgument("text offset %d: "+format, append([]interface{}{p.pos}, args...)...)
}

func (p *textParser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *textParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *textParser) consume(ch byte) bool {
	if p.peek() == ch {
		p.pos++
		return true
	}
	return false
}

func (p *textParser) expect(ch byte) error {
	if !p.consume(ch) {
		return p.errorf("expected %q", ch)
	}
	return nil
}

func (p *textParser) word() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			break
		}
		p.pos++
	}
	return p.s[start:p.pos]
}

// keyword consumes w when it is the next word.
func (p *textParser) keyword(w string) bool {
	save := p.pos
	if strings.EqualFold(p.word(), w) {
		return true
	}
	p.pos = save
	return false
}

func (p *textParser) number() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == ' ' || c == ',' || c == '(' || c == ')' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("expected a number")
	}
	v, err := strconv.ParseFloat(p.s[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf("invalid number %q", p.s[start:p.pos])
	}
	return v, nil
}

func (p *textParser) coordinate() (Coordinate, error) {
	var vs []float64
	for {
		if ch := p.peek(); ch == ',' || ch == ')' || ch == 0 {
			break
		}
		v, err := p.number()
		if err != nil {
			return Undefined, err
		}
		vs = append(vs, v)
	}
	switch len(vs) {
	case 2:
		return Coordinate{X: vs[0], Y: vs[1]}, nil
	case 3:
		return Coordinate{X: vs[0], Y: vs[1], Z: vs[2]}, nil
	}
	return Undefined, p.errorf("a coordinate needs 2 or 3 values, got %d", len(vs))
}

// coordinates reads "(c, c, ...)" or EMPTY.
func (p *textParser) coordinates() ([]Coordinate, error) {
	if p.keyword("EMPTY") {
		return nil, nil
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var cs []Coordinate
	for {
		c, err := p.coordinate()
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
		if !p.consume(',') {
			break
		}
	}
	return cs, p.expect(')')
}

// list reads "(item, item, ...)" or EMPTY.
func (p *textParser) list(item func() error) error {
	if p.keyword("EMPTY") {
		return nil
	}
	if err := p.expect('('); err != nil {
		return err
	}
	for {
		if err := item(); err != nil {
			return err
		}
		if !p.consume(',') {
			break
		}
	}
	return p.expect(')')
}

func (p *textParser) rings() ([][]Coordinate, error) {
	var rings [][]Coordinate
	err := p.list(func() error {
		cs, err := p.coordinates()
		rings = append(rings, cs)
		return err
	})
	return rings, err
}

func (p *textParser) point() (Coordinate, error) {
	if p.keyword("EMPTY") {
		return Undefined, nil
	}
	if err := p.expect('('); err != nil {
		return Undefined, err
	}
	c, err := p.coordinate()
	if err != nil {
		return Undefined, err
	}
	return c, p.expect(')')
}

func (p *textParser) geometry() (Geometry, error) {
	tag := p.word()
	kind := KindUnknown
	for _, k := range Kinds() {
		if strings.EqualFold(k.Tag(), tag) {
			kind = k
			break
		}
	}
	if kind == KindUnknown {
		return nil, p.errorf("unknown geometry tag %q", tag)
	}
	p.keyword("Z")

	switch kind {
	case KindPoint:
		c, err := p.point()
		if err != nil {
			return nil, err
		}
		return as(p.f.CreatePoint(c))
	case KindLineString, KindLine, KindLinearRing:
		cs, err := p.coordinates()
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindLine:
			if len(cs) != 2 {
				return nil, p.errorf("a line needs 2 coordinates, got %d", len(cs))
			}
			return as(p.f.CreateLine(cs[0], cs[1]))
		case KindLinearRing:
			return as(p.f.CreateLinearRing(cs))
		}
		return as(p.f.CreateLineString(cs))
	case KindPolygon:
		rings, err := p.rings()
		if err != nil {
			return nil, err
		}
		if len(rings) == 0 {
			return as(p.f.CreatePolygon(nil))
		}
		return as(p.f.CreatePolygon(rings[0], rings[1:]...))
	case KindTriangle:
		rings, err := p.rings()
		if err != nil {
			return nil, err
		}
		if len(rings) != 1 || len(rings[0]) != 4 {
			return nil, p.errorf("a triangle needs a single ring of 4 coordinates")
		}
		r := rings[0]
		return as(p.f.CreateTriangle(r[0], r[1], r[2]))
	case KindMultiPoint:
		var cs []Coordinate
		err := p.list(func() error {
			// bare coordinates are accepted as well
			if ch := p.peek(); ch == '(' || ch == 'E' || ch == 'e' {
				c, err := p.point()
				cs = append(cs, c)
				return err
			}
			c, err := p.coordinate()
			cs = append(cs, c)
			return err
		})
		if err != nil {
			return nil, err
		}
		return as(p.f.CreateMultiPointFromCoordinates(cs))
	case KindMultiLineString:
		var lines []LineString
		err := p.list(func() error {
			cs, err := p.coordinates()
			if err != nil {
				return err
			}
			l, err := p.f.CreateLineString(cs)
			lines = append(lines, l)
			return err
		})
		if err != nil {
			return nil, err
		}
		return as(p.f.CreateMultiLineString(lines))
	case KindMultiPolygon:
		var polygons []Polygon
		err := p.list(func() error {
			rings, err := p.rings()
			if err != nil {
				return err
			}
			var pg Polygon
			if len(rings) == 0 {
				pg, err = p.f.CreatePolygon(nil)
			} else {
				pg, err = p.f.CreatePolygon(rings[0], rings[1:]...)
			}
			polygons = append(polygons, pg)
			return err
		})
		if err != nil {
			return nil, err
		}
		return as(p.f.CreateMultiPolygon(polygons))
	default:
		var members []Geometry
		err := p.list(func() error {
			g, err := p.geometry()
			members = append(members, g)
			return err
		})
		if err != nil {
			return nil, err
		}
		return as(p.f.CreateGeometryCollection(members))
	}
}
