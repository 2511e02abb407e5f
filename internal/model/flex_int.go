package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt accepts a JSON number or a numeric string ("2") and rejects
// anything that is not a whole number.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return fmt.Errorf("invalid integer value %s", b)
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return fmt.Errorf("integer value %s out of range", b)
	}

	*f = FlexInt(n)
	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}
