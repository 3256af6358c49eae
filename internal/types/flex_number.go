package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt is an int64 accepting a JSON number (integral) or a numeric string.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return f.set(string(n))
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return f.set(strings.TrimSpace(s))
	}

	return fmt.Errorf("FlexInt: unexpected type, expected number or string")
}

func (f *FlexInt) set(s string) error {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexInt(v)
		return nil
	}
	// 100.0 is still a whole number
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != float64(int64(v)) {
		return fmt.Errorf("FlexInt: invalid integer %q", s)
	}
	*f = FlexInt(int64(v))
	return nil
}

// FlexFloat is a float64 accepting a JSON number or a numeric string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = FlexFloat(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("FlexFloat: invalid number %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}

	return fmt.Errorf("FlexFloat: unexpected type, expected number or string")
}
