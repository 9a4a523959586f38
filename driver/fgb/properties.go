package fgb

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb/geojson"
)

type column struct {
	name string
	typ  flattypes.ColumnType
}

// schema is the ordered column set of a layer. Columns appear in the order
// their names are first seen, names being sorted within each feature so the
// layout does not depend on map iteration.
type schema struct {
	columns []column
	index   map[string]int
}

func inferSchema(features []*geojson.Feature) *schema {
	s := &schema{index: map[string]int{}}
	for _, f := range features {
		if f == nil {
			continue
		}
		names := make([]string, 0, len(f.Properties))
		for name := range f.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			v := f.Properties[name]
			if v == nil {
				continue
			}
			s.add(name, columnType(v))
		}
	}
	return s
}

func (s *schema) add(name string, t flattypes.ColumnType) {
	i, ok := s.index[name]
	if !ok {
		s.index[name] = len(s.columns)
		s.columns = append(s.columns, column{name: name, typ: t})
		return
	}
	s.columns[i].typ = promote(s.columns[i].typ, t)
}

func (s *schema) build(b *flatbuffers.Builder) []*writer.Column {
	out := make([]*writer.Column, 0, len(s.columns))
	for _, c := range s.columns {
		col := writer.NewColumn(b)
		col.SetName(c.name)
		// title mirrors the name for the JavaScript reader
		col.SetTitle(c.name)
		col.SetType(c.typ)
		col.SetNullable(true)
		out = append(out, col)
	}
	return out
}

// encode writes the non-nil properties in column order as
// [uint16 column index][value] pairs. Values that cannot be represented in
// their column type are left out.
func (s *schema) encode(props geojson.Properties) []byte {
	if len(props) == 0 {
		return nil
	}
	var buf []byte
	for i, c := range s.columns {
		v, ok := props[c.name]
		if !ok || v == nil {
			continue
		}
		value, ok := encodeValue(v, c.typ)
		if !ok {
			continue
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(i))
		buf = append(buf, value...)
	}
	return buf
}

// columnType picks the column type for a Go value.
func columnType(v any) flattypes.ColumnType {
	switch n := v.(type) {
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return flattypes.ColumnTypeLong
		}
		return flattypes.ColumnTypeDouble
	case string:
		return flattypes.ColumnTypeString
	case []byte:
		return flattypes.ColumnTypeBinary
	case time.Time:
		return flattypes.ColumnTypeDateTime
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool:
		return flattypes.ColumnTypeBool
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return flattypes.ColumnTypeInt
	case reflect.Int, reflect.Int64:
		return flattypes.ColumnTypeLong
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return flattypes.ColumnTypeUInt
	case reflect.Uint, reflect.Uint64:
		return flattypes.ColumnTypeULong
	case reflect.Float32:
		return flattypes.ColumnTypeFloat
	case reflect.Float64:
		return flattypes.ColumnTypeDouble
	case reflect.String:
		return flattypes.ColumnTypeString
	}
	return flattypes.ColumnTypeJson
}

var numericRank = map[flattypes.ColumnType]int{
	flattypes.ColumnTypeByte:   1,
	flattypes.ColumnTypeUByte:  2,
	flattypes.ColumnTypeShort:  3,
	flattypes.ColumnTypeUShort: 4,
	flattypes.ColumnTypeInt:    5,
	flattypes.ColumnTypeUInt:   6,
	flattypes.ColumnTypeLong:   7,
	flattypes.ColumnTypeULong:  8,
	flattypes.ColumnTypeFloat:  9,
	flattypes.ColumnTypeDouble: 10,
}

// promote returns a column type able to hold values of both a and b.
func promote(a, b flattypes.ColumnType) flattypes.ColumnType {
	if a == b {
		return a
	}
	if a == flattypes.ColumnTypeJson || b == flattypes.ColumnTypeJson {
		return flattypes.ColumnTypeJson
	}
	ra, okA := numericRank[a]
	rb, okB := numericRank[b]
	switch {
	case okA && okB:
		if ra > rb {
			return a
		}
		return b
	case a == flattypes.ColumnTypeString || b == flattypes.ColumnTypeString:
		return flattypes.ColumnTypeString
	}
	return flattypes.ColumnTypeJson
}

func encodeValue(v any, t flattypes.ColumnType) ([]byte, bool) {
	switch t {
	case flattypes.ColumnTypeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, false
		}
		if b {
			return []byte{1}, true
		}
		return []byte{0}, true
	case flattypes.ColumnTypeByte, flattypes.ColumnTypeUByte:
		n, ok := toInt64(v)
		return []byte{byte(n)}, ok
	case flattypes.ColumnTypeShort, flattypes.ColumnTypeUShort:
		n, ok := toInt64(v)
		return binary.LittleEndian.AppendUint16(nil, uint16(n)), ok
	case flattypes.ColumnTypeInt, flattypes.ColumnTypeUInt:
		n, ok := toInt64(v)
		return binary.LittleEndian.AppendUint32(nil, uint32(n)), ok
	case flattypes.ColumnTypeLong:
		n, ok := toInt64(v)
		return binary.LittleEndian.AppendUint64(nil, uint64(n)), ok
	case flattypes.ColumnTypeULong:
		n, ok := toUint64(v)
		return binary.LittleEndian.AppendUint64(nil, n), ok
	case flattypes.ColumnTypeFloat:
		f, ok := toFloat64(v)
		return binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(f))), ok
	case flattypes.ColumnTypeDouble:
		f, ok := toFloat64(v)
		return binary.LittleEndian.AppendUint64(nil, math.Float64bits(f)), ok
	case flattypes.ColumnTypeString:
		s, ok := toString(v)
		return sized([]byte(s)), ok
	case flattypes.ColumnTypeDateTime:
		if tm, ok := v.(time.Time); ok {
			return sized([]byte(tm.Format(time.RFC3339Nano))), true
		}
		s, ok := toString(v)
		return sized([]byte(s)), ok
	case flattypes.ColumnTypeJson:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		return sized(b), true
	case flattypes.ColumnTypeBinary:
		b, ok := v.([]byte)
		return sized(b), ok
	}
	return nil, false
}

// sized prefixes b with its uint32 length.
func sized(b []byte) []byte {
	out := binary.LittleEndian.AppendUint32(make([]byte, 0, 4+len(b)), uint32(len(b)))
	return append(out, b...)
}

// decodeProperties reads the property buffer of a feature using the column
// types of the header. Decoding stops at the first malformed entry.
func decodeProperties(data []byte, header *flattypes.Header) geojson.Properties {
	if len(data) == 0 || header == nil {
		return nil
	}
	props := geojson.Properties{}
	for off := 0; off+2 <= len(data); {
		i := int(binary.LittleEndian.Uint16(data[off:]))
		off += 2

		var col flattypes.Column
		if i >= header.ColumnsLength() || !header.Columns(&col, i) {
			break
		}
		v, n := decodeValue(data[off:], col.Type())
		if n == 0 {
			break
		}
		off += n
		props[string(col.Name())] = v
	}
	return props
}

// decodeValue returns the value at the start of data and its encoded size,
// or a zero size when data is too short.
func decodeValue(data []byte, t flattypes.ColumnType) (any, int) {
	fixed := func(n int) bool { return len(data) >= n }
	switch t {
	case flattypes.ColumnTypeBool:
		if fixed(1) {
			return data[0] != 0, 1
		}
	case flattypes.ColumnTypeByte:
		if fixed(1) {
			return int8(data[0]), 1
		}
	case flattypes.ColumnTypeUByte:
		if fixed(1) {
			return data[0], 1
		}
	case flattypes.ColumnTypeShort:
		if fixed(2) {
			return int16(binary.LittleEndian.Uint16(data)), 2
		}
	case flattypes.ColumnTypeUShort:
		if fixed(2) {
			return binary.LittleEndian.Uint16(data), 2
		}
	case flattypes.ColumnTypeInt:
		if fixed(4) {
			return int32(binary.LittleEndian.Uint32(data)), 4
		}
	case flattypes.ColumnTypeUInt:
		if fixed(4) {
			return binary.LittleEndian.Uint32(data), 4
		}
	case flattypes.ColumnTypeLong:
		if fixed(8) {
			return int64(binary.LittleEndian.Uint64(data)), 8
		}
	case flattypes.ColumnTypeULong:
		if fixed(8) {
			return binary.LittleEndian.Uint64(data), 8
		}
	case flattypes.ColumnTypeFloat:
		if fixed(4) {
			return math.Float32frombits(binary.LittleEndian.Uint32(data)), 4
		}
	case flattypes.ColumnTypeDouble:
		if fixed(8) {
			return math.Float64frombits(binary.LittleEndian.Uint64(data)), 8
		}
	case flattypes.ColumnTypeString:
		if b, n := unsized(data); n > 0 {
			return string(b), n
		}
	case flattypes.ColumnTypeDateTime:
		if b, n := unsized(data); n > 0 {
			if tm, err := time.Parse(time.RFC3339Nano, string(b)); err == nil {
				return tm, n
			}
			return string(b), n
		}
	case flattypes.ColumnTypeJson:
		if b, n := unsized(data); n > 0 {
			var v any
			if err := json.Unmarshal(b, &v); err != nil {
				return string(b), n
			}
			return v, n
		}
	case flattypes.ColumnTypeBinary:
		if b, n := unsized(data); n > 0 {
			return append([]byte(nil), b...), n
		}
	}
	return nil, 0
}

func unsized(data []byte) ([]byte, int) {
	if len(data) < 4 {
		return nil, 0
	}
	n := int(binary.LittleEndian.Uint32(data))
	if len(data) < 4+n {
		return nil, 0
	}
	return data[4 : 4+n], 4 + n
}

func toInt64(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		return int64(f), err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), true
	}
	return 0, false
}

func toUint64(v any) (uint64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	}
	n, ok := toInt64(v)
	if !ok || n < 0 {
		return 0, false
	}
	return uint64(n), true
}

func toFloat64(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// toString renders strings as is and anything else as JSON.
func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String(), true
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}
