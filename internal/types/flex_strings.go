package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexStringList is a list of strings that coerces scalar elements (numbers, booleans) to their text form.
// null elements are dropped.
type FlexStringList []string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexStringList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = FlexStringList{}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("FlexStringList: expected array: %w", err)
	}

	out := make(FlexStringList, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || string(item) == "null" {
			continue
		}
		switch item[0] {
		case '"':
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			out = append(out, s)
		case 't', 'f':
			var b bool
			if err := json.Unmarshal(item, &b); err != nil {
				return err
			}
			out = append(out, strconv.FormatBool(b))
		case '[', '{':
			return fmt.Errorf("FlexStringList: nested values are not supported")
		default:
			var n json.Number
			if err := json.Unmarshal(item, &n); err != nil {
				return err
			}
			out = append(out, n.String())
		}
	}

	*f = out
	return nil
}

// Slice converts FlexStringList back to []string, never nil.
func (f FlexStringList) Slice() []string {
	if f == nil {
		return []string{}
	}
	return []string(f)
}
