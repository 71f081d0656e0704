// Package api fetches the project list document.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Document is the top-level JSON shape of the project list.
type Document struct {
	Projects []Project `json:"projects"`
}

// Project is one raw entry of the projects array.
type Project struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	StartDate   Number `json:"start_date"`
	EndDate     Number `json:"end_date"`
	CurrentStep Number `json:"current_step"`
	TotalSteps  Number `json:"total_steps"`
	Active      bool   `json:"active"`
	Description string `json:"description"`

	// Extra holds every key not listed above, untouched.
	Extra map[string]json.RawMessage `json:"-"`
}

var knownFields = map[string]bool{
	"id":           true,
	"name":         true,
	"start_date":   true,
	"end_date":     true,
	"current_step": true,
	"total_steps":  true,
	"active":       true,
	"description":  true,
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, v := range all {
		if knownFields[k] {
			continue
		}
		if known.Extra == nil {
			known.Extra = make(map[string]json.RawMessage)
		}
		known.Extra[k] = v
	}

	*p = Project(known)
	return nil
}

// ID is a project identifier. The document may carry it as a number or a
// string; both are normalized to the string form.
type ID string

// UnmarshalJSON accepts JSON strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Number is a numeric field that remembers whether the document actually
// held a JSON number there. Strings, booleans, null and missing keys all
// decode without error but leave Valid false.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a valid Number holding v.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// Float returns the value, or NaN when the field was not numeric.
func (n Number) Float() float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Value
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = Number{}
	if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return nil
	}
	*n = Num(v)
	return nil
}

// MarshalJSON writes null for invalid numbers.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
