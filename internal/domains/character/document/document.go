// Package document navigates and edits character sheets stored as JSON.
//
// A document is decoded into the generic tree produced by encoding/json
// (map[string]interface{}, []interface{}, string, json.Number, bool, nil).
// Paths address nodes in that tree one segment at a time; a segment is an
// object key or an array index, never both.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidSegment = errors.New("path segment must be a string key or an integer index")
	ErrNotJSON        = errors.New("document is not valid JSON")
)

// Segment is one step of a Path
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func KeySegment(key string) Segment { return Segment{Key: key} }
func IndexSegment(i int) Segment    { return Segment{Index: i, IsIndex: true} }

// UnmarshalJSON accepts "name" as a key and 3 or -1 as an index
func (s *Segment) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var key string
		if err := json.Unmarshal(b, &key); err != nil {
			return err
		}
		*s = KeySegment(key)
		return nil
	}

	i, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSegment, b)
	}
	*s = IndexSegment(i)
	return nil
}

func (s Segment) MarshalJSON() ([]byte, error) {
	if s.IsIndex {
		return []byte(strconv.Itoa(s.Index)), nil
	}
	return json.Marshal(s.Key)
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return "." + s.Key
}

// Path addresses a node from the document root. An empty path is the root.
type Path []Segment

func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var buf bytes.Buffer
	buf.WriteByte('$')
	for _, s := range p {
		buf.WriteString(s.String())
	}
	return buf.String()
}

// Decode parses raw JSON, keeping numbers as json.Number so they survive a re-encode unchanged
func Decode(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrNotJSON)
	}
	return v, nil
}

// Encode is the inverse of Decode
func Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Lookup walks path from root. ok is false when any segment fails to resolve:
// a missing key, an out-of-range index, or a step into a scalar.
func Lookup(root interface{}, path Path) (value interface{}, ok bool) {
	node := root
	for _, seg := range path {
		node, ok = step(node, seg)
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// Set resolves path and applies every assignment to the node found there.
// Objects take any field name. Arrays take fields that parse as an in-range
// integer index. Nothing is written unless the path resolves to a container
// and every assignment is applicable.
func Set(root interface{}, path Path, assignments map[string]interface{}) bool {
	target, ok := Lookup(root, path)
	if !ok {
		return false
	}

	switch node := target.(type) {
	case map[string]interface{}:
		for field, value := range assignments {
			node[field] = value
		}
		return true

	case []interface{}:
		indices := make(map[string]int, len(assignments))
		for field := range assignments {
			i, err := strconv.Atoi(field)
			if err != nil {
				return false
			}
			i, ok := normalizeIndex(i, len(node))
			if !ok {
				return false
			}
			indices[field] = i
		}
		for field, value := range assignments {
			node[indices[field]] = value
		}
		return true
	}

	return false
}

func step(node interface{}, seg Segment) (interface{}, bool) {
	switch n := node.(type) {
	case map[string]interface{}:
		if seg.IsIndex {
			return nil, false
		}
		v, ok := n[seg.Key]
		return v, ok

	case []interface{}:
		if !seg.IsIndex {
			return nil, false
		}
		i, ok := normalizeIndex(seg.Index, len(n))
		if !ok {
			return nil, false
		}
		return n[i], true
	}
	return nil, false
}

// normalizeIndex maps negative indices from the end, -1 being the last element
func normalizeIndex(i, length int) (int, bool) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}
