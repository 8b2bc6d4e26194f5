package weave

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/taxweave/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"zero time as number": {
			raw:      "0",
			wantTime: 0,
		},
		"zero time as string": {
			raw:      `"1970-01-01T01:00:00+01:00"`,
			wantTime: 0,
		},
		"a time as string": {
			raw:      `"2019-04-04T11:35:40.89181085+02:00"`,
			wantTime: 1554370540,
		},
		"a time as number": {
			raw:      "1554370540",
			wantTime: 1554370540,
		},
		"negative number": {
			raw:     "-1",
			wantErr: errors.ErrInput,
		},
		"invalid string": {
			raw:     `"not a time string"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %v", tc.wantErr, err)
			}
			if got != tc.wantTime {
				t.Fatalf("want %d time, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeArithmetic(t *testing.T) {
	start := UnixTime(1000)
	later := start.Add(90 * time.Second)
	if later != 1090 {
		t.Fatalf("unexpected time: %d", later)
	}
	if d := later.Sub(start); d != 90 {
		t.Fatalf("unexpected difference: %d", d)
	}
	if d := start.Sub(later); d != -90 {
		t.Fatalf("unexpected difference: %d", d)
	}
	if !UnixTime(0).IsZero() || start.IsZero() {
		t.Fatal("invalid zero check")
	}
	if err := UnixTime(-1).Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}
