// internal/ua/ua.go
//
// User-Agent parsing helpers.
//
// This wrapper isolates the third-party `github.com/avct/uasurfer` API so
// the rest of the codebase never sees its enums or structs.  Names are
// returned without the library's type prefixes ("BrowserChrome" → "Chrome").
package ua

import (
	"fmt"
	"strconv"
	"strings"

	surfer "github.com/avct/uasurfer"
)

// Info carries the UA attributes shown in feedback notifications.
//
// Example (Chrome on macOS):
//
//	Browser   "Chrome"
//	Version   "125"
//	OS        "macOS"
//	OSVersion "14.4"
//	Device    "Desktop"
//	Platform  "Mac"
//	IsBot     false
//
// Device will be one of: "Desktop", "Mobile", "Tablet", "Bot", or "Other".
type Info struct {
	Browser   string
	Version   string
	OS        string
	OSVersion string
	Device    string
	Platform  string
	IsBot     bool
	Raw       string
}

// Parse converts a raw header into an Info struct.
func Parse(raw string) Info {
	u := surfer.Parse(raw)

	info := Info{
		Browser:   trimName(u.Browser.Name.String(), "Browser"),
		Version:   versionToString(u.Browser.Version),
		OS:        trimName(u.OS.Name.String(), "OS"),
		OSVersion: versionToString(u.OS.Version),
		Platform:  trimName(u.OS.Platform.String(), "Platform"),
		IsBot:     u.IsBot(),
		Raw:       raw,
	}
	if info.OS == "MacOSX" {
		info.OS = "macOS"
	}

	switch u.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "Mobile"
	default:
		info.Device = "Other"
	}

	return info
}

// Summary renders a one-line description, e.g. "Chrome 125 on macOS 14.4
// (Desktop)".  Unknown parts are left out.
func (i Info) Summary() string {
	if i.Raw == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(joinNonEmpty(i.Browser, i.Version))
	if osPart := joinNonEmpty(i.OS, i.OSVersion); osPart != "" {
		if b.Len() > 0 {
			b.WriteString(" on ")
		}
		b.WriteString(osPart)
	}
	if i.Device != "" {
		fmt.Fprintf(&b, " (%s)", i.Device)
	}
	return strings.TrimSpace(b.String())
}

func joinNonEmpty(a, b string) string {
	if a == "" || a == "Unknown" {
		return ""
	}
	if b == "" {
		return a
	}
	return a + " " + b
}

func trimName(s, prefix string) string {
	return strings.TrimPrefix(s, prefix)
}

// versionToString renders a semantic version in dotted form while trimming
// trailing zeros, e.g. 17.0.0 → "17", 17.3.0 → "17.3", 17.3.1 → "17.3.1".
func versionToString(v surfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if v.Minor != 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(int(v.Major))
}
