package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fathima-sithara/social-service/internal/domain"
)

// Timestamp decodes either an RFC 3339 string or epoch milliseconds.
// null and "" leave it zero.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		// also covers clients that stringify Date.now()
		parsed, err := domain.ParseTimestamp(s)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid timestamp %s", b)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("invalid timestamp %s", b)
	}
	parsed, ok := domain.FromEpochMillis(f)
	if !ok {
		return fmt.Errorf("invalid timestamp %s", b)
	}
	t.Time = parsed
	return nil
}
