// internal/ua/ua_test.go

package ua

import (
	"strings"
	"testing"

	surfer "github.com/avct/uasurfer"
)

const chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

func TestParseChromeMac(t *testing.T) {
	info := Parse(chromeMac)
	if info.Browser != "Chrome" {
		t.Fatalf("Browser = %q, want Chrome", info.Browser)
	}
	if info.OS != "macOS" {
		t.Fatalf("OS = %q, want macOS", info.OS)
	}
	if info.Device != "Desktop" || info.IsBot {
		t.Fatalf("Device = %q, IsBot = %v", info.Device, info.IsBot)
	}
	if s := info.Summary(); !strings.HasPrefix(s, "Chrome 125 on macOS") || !strings.HasSuffix(s, "(Desktop)") {
		t.Fatalf("Summary = %q", s)
	}
}

func TestSummaryEmpty(t *testing.T) {
	if s := Parse("").Summary(); s != "" {
		t.Fatalf("Summary of empty UA = %q", s)
	}
}

func TestVersionToString(t *testing.T) {
	cases := []struct {
		v    surfer.Version
		want string
	}{
		{surfer.Version{}, ""},
		{surfer.Version{Major: 17}, "17"},
		{surfer.Version{Major: 17, Minor: 3}, "17.3"},
		{surfer.Version{Major: 17, Minor: 3, Patch: 1}, "17.3.1"},
	}
	for _, c := range cases {
		if got := versionToString(c.v); got != c.want {
			t.Errorf("versionToString(%+v) = %q, want %q", c.v, got, c.want)
		}
	}
}
