package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var extendedNumberKeys = []string{"$numberInt", "$numberLong", "$numberDouble", "$numberDecimal"}

// Number accepts plain JSON numbers, numeric strings ("1,234.5", "T5") and
// MongoDB extended JSON wrappers such as {"$numberInt": "12"}. null and blank
// strings decode to zero.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}

	switch b[0] {
	case '{':
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return err
		}
		for _, key := range extendedNumberKeys {
			if raw, ok := wrapped[key]; ok {
				return n.UnmarshalJSON(raw)
			}
		}
		return fmt.Errorf("unsupported number object %s", b)
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "T")
		if s == "" || s == "-" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}
}

func (n Number) Int() int { return int(math.Round(float64(n))) }

func (n Number) Float() float64 { return float64(n) }

// ID is an identifier the providers send either as a string or as a number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	var n Number
	if err := n.UnmarshalJSON(b); err != nil {
		return err
	}
	*id = ID(strconv.FormatFloat(float64(n), 'f', -1, 64))
	return nil
}

func (id ID) String() string { return string(id) }
