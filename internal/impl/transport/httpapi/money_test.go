package httpapi_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PedroCamargo-dev/core-ledger-service/internal/impl/transport/httpapi"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		major string
		want  int64
	}{
		{"0", 0},
		{"1", 100},
		{"10.50", 1050},
		{"0.01", 1},
		{"0.005", 1},     // half rounds away from zero
		{"0.004", 0},
		{"-1.255", -126}, // negative half also rounds away from zero
		{"99999999.99", 9999999999},
	}

	for _, tc := range cases {
		major, err := decimal.NewFromString(tc.major)
		if err != nil {
			t.Fatalf("bad test input %q: %v", tc.major, err)
		}

		if got := httpapi.ToMinorUnits(major); got != tc.want {
			t.Errorf("ToMinorUnits(%s): expected %d, got %d", tc.major, tc.want, got)
		}
	}
}

func TestFromMinorUnits(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{0, "0"},
		{100, "1"},
		{1050, "10.5"},
		{1, "0.01"},
		{-126, "-1.26"},
	}

	for _, tc := range cases {
		if got := httpapi.FromMinorUnits(tc.minor); got.String() != tc.want {
			t.Errorf("FromMinorUnits(%d): expected %s, got %s", tc.minor, tc.want, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, minor := range []int64{0, 1, 99, 100, 123456} {
		if got := httpapi.ToMinorUnits(httpapi.FromMinorUnits(minor)); got != minor {
			t.Errorf("round trip of %d produced %d", minor, got)
		}
	}
}
