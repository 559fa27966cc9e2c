package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldKind selects how a draft field is edited and serialized.
type FieldKind int

const (
	// FieldText serializes as a JSON string.
	FieldText FieldKind = iota
	// FieldNumber serializes as a JSON number.
	FieldNumber
	// FieldBool serializes as a JSON boolean ("true"/"yes"/"1" parse as true).
	FieldBool
)

// FieldSpec describes one form field: its wire name, a human label, how it
// is edited, and optional validation. A resource's []FieldSpec replaces the
// schema-less "iterate the object keys" form rendering; iteration order is
// the declaration order.
type FieldSpec struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	// Min/Max bound FieldNumber values (inclusive) when both are set.
	Min, Max int
}

// Draft is the client-only, ephemeral form state: an order-preserving
// mapping from field name to string value. It is initialized from a field
// template or a fetched record, mutated field-by-field, and discarded on
// cancel or after successful submission.
//
// The draft and the last-fetched canonical record are decoupled: Set updates
// exactly one key and never touches siblings (merge-on-write, never
// replace-on-write).
type Draft struct {
	specs  []FieldSpec
	values map[string]string
}

// NewDraft seeds a draft from the field template with empty values
// ("0"/"false" for numbers and booleans so submissions are well-typed).
func NewDraft(specs []FieldSpec) *Draft {
	d := &Draft{specs: specs, values: make(map[string]string, len(specs))}
	for _, spec := range specs {
		switch spec.Kind {
		case FieldNumber:
			d.values[spec.Name] = "0"
		case FieldBool:
			d.values[spec.Name] = "false"
		default:
			d.values[spec.Name] = ""
		}
	}
	return d
}

// DraftFromRecord seeds a draft with the current values of a fetched record.
// The record is flattened through its JSON form so the draft sees exactly
// the wire field names.
func DraftFromRecord(specs []FieldSpec, record any) (*Draft, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("flattening record: %w", err)
	}
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("flattening record: %w", err)
	}

	d := NewDraft(specs)
	for _, spec := range specs {
		value, ok := flat[spec.Name]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			d.values[spec.Name] = v
		case float64:
			d.values[spec.Name] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			d.values[spec.Name] = strconv.FormatBool(v)
		default:
			d.values[spec.Name] = fmt.Sprintf("%v", v)
		}
	}
	return d, nil
}

// Specs returns the field descriptors in declaration order.
func (d *Draft) Specs() []FieldSpec { return d.specs }

// Get returns the current value for a field name.
func (d *Draft) Get(name string) string { return d.values[name] }

// Set updates exactly the named field. All sibling keys keep their current
// values.
func (d *Draft) Set(name, value string) {
	if _, ok := d.values[name]; !ok {
		return
	}
	d.values[name] = value
}

// Reset restores the template's initial values, e.g. after a successful
// feedback submission.
func (d *Draft) Reset() {
	fresh := NewDraft(d.specs)
	d.values = fresh.values
}

// Validate checks required fields and numeric bounds. It returns the first
// violation found, in declaration order.
func (d *Draft) Validate() error {
	for _, spec := range d.specs {
		value := d.values[spec.Name]
		if spec.Required && value == "" {
			return fmt.Errorf("%s is required", spec.Label)
		}
		if spec.Kind == FieldNumber && value != "" {
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%s must be a number", spec.Label)
			}
			if spec.Min != 0 || spec.Max != 0 {
				if n < float64(spec.Min) || n > float64(spec.Max) {
					return fmt.Errorf("%s must be between %d and %d", spec.Label, spec.Min, spec.Max)
				}
			}
		}
	}
	return nil
}

// Body converts the draft to the typed JSON object the backend expects,
// using each field's kind. Unparseable numbers fall back to zero; bool
// accepts "true"/"yes"/"1" as true.
func (d *Draft) Body() map[string]any {
	body := make(map[string]any, len(d.specs))
	for _, spec := range d.specs {
		value := d.values[spec.Name]
		switch spec.Kind {
		case FieldNumber:
			n, _ := strconv.ParseFloat(value, 64)
			if n == float64(int64(n)) {
				body[spec.Name] = int64(n)
			} else {
				body[spec.Name] = n
			}
		case FieldBool:
			body[spec.Name] = value == "true" || value == "yes" || value == "1"
		default:
			body[spec.Name] = value
		}
	}
	return body
}
