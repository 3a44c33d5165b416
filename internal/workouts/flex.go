package workouts

import (
	"bytes"
	"strconv"
	"strings"
)

// Mobile clients log weight and reps either as JSON numbers or as
// numeric strings, depending on the app version. FlexFloat and FlexInt
// accept both at the ingestion boundary; anything unparsable counts as
// zero so a single malformed set never rejects a whole session.

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat(coerceNumeric(data))
	return nil
}

type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	*i = FlexInt(coerceNumeric(data))
	return nil
}

func coerceNumeric(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return 0
		}
		raw = strings.TrimSpace(unquoted)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}
