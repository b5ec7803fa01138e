package reascript

import (
	"context"
	"encoding/json"
	"fmt"
)

// Invoker executes one named bridge function and returns its values.
// Implementations classify transport failures as NOT_CONNECTED and deadline
// expiry as TIMEOUT domain errors.
type Invoker interface {
	Invoke(ctx context.Context, fn string, args ...any) (Values, error)
}

// Values holds the positional return values of one bridge call, undecoded.
type Values []json.RawMessage

// Scan decodes the leading return values into dests. A nil dest skips its
// position. Scanning more dests than returned values is an error; trailing
// values may be left unread.
func (v Values) Scan(dests ...any) error {
	if len(dests) > len(v) {
		return fmt.Errorf("bridge returned %d values, need %d", len(v), len(dests))
	}
	for i, dest := range dests {
		if dest == nil {
			continue
		}
		if err := json.Unmarshal(v[i], dest); err != nil {
			return fmt.Errorf("decode return value %d: %w", i, err)
		}
	}
	return nil
}
