package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNotObject is returned when a document's root is not a JSON object.
var ErrNotObject = errors.New("document root is not an object")

// ParseObject decodes a JSON document whose root must be an object. Key
// order is preserved. Trailing data after the root value is rejected.
func ParseObject(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid trailing data at offset %d", dec.InputOffset())
	}

	if v.kind != KindObject {
		return nil, ErrNotObject
	}
	return v.obj, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeList(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q at offset %d", t, dec.InputOffset())
		}
	case string:
		return String(t), nil
	case json.Number:
		return numberValue(t)
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string at offset %d", dec.InputOffset())
		}

		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, v)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return FromObject(obj), nil
}

func decodeList(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}

	// closing bracket
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return List(items...), nil
}

func numberValue(n json.Number) (Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	}

	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Float(f), nil
}

// MarshalJSON encodes v as compact JSON, keeping object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	return appendValue(nil, v), nil
}

// MarshalJSON encodes o as a compact JSON object, keeping key order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return appendValue(nil, FromObject(o)), nil
}

// MarshalIndent encodes o as JSON indented by the given number of spaces.
// An indent of zero produces compact output.
func MarshalIndent(o *Object, indent int) ([]byte, error) {
	compact := appendValue(nil, FromObject(o))
	if indent <= 0 {
		return compact, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", strings.Repeat(" ", indent)); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func appendValue(dst []byte, v Value) []byte {
	switch v.kind {
	case KindString:
		return appendString(dst, v.str)
	case KindInt:
		return strconv.AppendInt(dst, v.num, 10)
	case KindFloat:
		return appendFloat(dst, v.flt)
	case KindBool:
		return strconv.AppendBool(dst, v.bln)
	case KindNull:
		return append(dst, "null"...)
	case KindList:
		dst = append(dst, '[')
		for i, item := range v.list {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendValue(dst, item)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i, k := range v.obj.keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, k)
			dst = append(dst, ':')
			dst = appendValue(dst, v.obj.vals[k])
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

// appendFloat writes f using the display spelling so integral floats keep
// their ".0" on disk. Non-finite values have no JSON form and become null.
func appendFloat(dst []byte, f float64) []byte {
	s := formatFloat(f)
	switch s {
	case "inf", "-inf", "nan":
		return append(dst, "null"...)
	}
	return append(dst, s...)
}

func appendString(dst []byte, s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	return append(dst, bytes.TrimRight(buf.Bytes(), "\n")...)
}
