package models

import "encoding/json"

// OptionalString is a three-state JSON string: absent (field not present in
// the payload), explicit null, or a value. Updates use it to tell "leave
// unchanged" (absent) apart from "overwrite" (null or value). An explicit
// null overwrites with the empty string; historical behavior kept on purpose.
type OptionalString struct {
	Set   bool
	Null  bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Get returns the value to write and whether the field should be written
// at all. Absent fields report false; null reports ("", true).
func (o OptionalString) Get() (string, bool) {
	if !o.Set {
		return "", false
	}
	if o.Null {
		return "", true
	}
	return o.Value, true
}
