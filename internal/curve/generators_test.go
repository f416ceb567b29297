package curve

import (
	"testing"

	"threshold.network/randbeacon/internal/testutils"
)

func TestHIsDeterministic(t *testing.T) {
	a := H()
	b := H()
	testutils.AssertBoolsEqual(t, "H is stable across calls", true, a.Equal(b))
}

func TestHIsOnCurve(t *testing.T) {
	h := H()
	decoded, err := DecodePoint(h.Bytes())
	if err != nil {
		t.Fatalf("H does not round-trip through its own encoding: %v", err)
	}
	testutils.AssertBoolsEqual(t, "decoded H equals H", true, decoded.Equal(h))
}
