package upstream

import (
	"encoding/json"
	"testing"
)

func TestNumber_Unmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`12`, 12},
		{`12.5`, 12.5},
		{`"1,234.5"`, 1234.5},
		{`"T5"`, 5},
		{`""`, 0},
		{`"-"`, 0},
		{`null`, 0},
		{`{"$numberInt": "7"}`, 7},
		{`{"$numberDouble": "3.25"}`, 3.25},
		{`{"$numberLong": "9000"}`, 9000},
	}

	for _, tc := range cases {
		var n Number
		if err := json.Unmarshal([]byte(tc.in), &n); err != nil {
			t.Errorf("Unmarshal(%s) failed: %v", tc.in, err)
			continue
		}
		if n.Float() != tc.want {
			t.Errorf("Unmarshal(%s): expected %v, got %v", tc.in, tc.want, n.Float())
		}
	}
}

func TestNumber_UnmarshalInvalid(t *testing.T) {
	for _, in := range []string{`"abc"`, `{"value": 1}`, `[1]`} {
		var n Number
		if err := json.Unmarshal([]byte(in), &n); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestID_Unmarshal(t *testing.T) {
	cases := map[string]ID{
		`"46046"`:                "46046",
		`46046`:                  "46046",
		`{"$numberInt":"46046"}`: "46046",
		`null`:                   "",
	}
	for in, want := range cases {
		var id ID
		if err := json.Unmarshal([]byte(in), &id); err != nil {
			t.Errorf("Unmarshal(%s) failed: %v", in, err)
			continue
		}
		if id != want {
			t.Errorf("Unmarshal(%s): expected %q, got %q", in, want, id)
		}
	}
}
