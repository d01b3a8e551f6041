package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   string
		want time.Time
		err  bool
	}{
		{"rfc3339", `"2024-01-01T10:00:00Z"`, want, false},
		{"rfc3339 offset", `"2024-01-01T12:00:00+02:00"`, want, false},
		{"epoch millis", `1704103200000`, want, false},
		{"epoch millis string", `"1704103200000"`, want, false},
		{"null", `null`, time.Time{}, false},
		{"empty string", `""`, time.Time{}, false},
		{"garbage", `"yesterday"`, time.Time{}, true},
		{"bool", `true`, time.Time{}, true},
		{"huge number", `1e300`, time.Time{}, true},
		{"beyond int64", `99999999999999999999`, time.Time{}, true},
		{"negative out of range", `-9e15`, time.Time{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			var v struct {
				TS Timestamp `json:"ts"`
			}
			err := json.Unmarshal([]byte(`{"ts":`+tc.in+`}`), &v)
			if tc.err {
				req.Error(err)
				return
			}
			req.NoError(err)
			req.True(tc.want.Equal(v.TS.Time), "got %v", v.TS.Time)
		})
	}
}
