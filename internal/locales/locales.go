// Package locales holds the fixed set of locales the site is published in.
// The same table drives locale stripping on inbound paths and the
// locale fan-out when cached pages are invalidated.
package locales

import "strings"

// Default is the unprefixed locale: /contact serves the default locale,
// /en/contact and /de/contact serve the shadow locales.
const Default = "fr"

// Supported lists every published locale, default first.
var Supported = []string{Default, "en", "de"}

// IsSupported reports whether code is one of the published locale codes.
func IsSupported(code string) bool {
	for _, l := range Supported {
		if l == code {
			return true
		}
	}
	return false
}

// Split separates an optional leading locale segment from a request path.
// "/en/admin/rooms" → ("en", "/admin/rooms"), "/admin" → ("fr", "/admin").
// A first segment that is not a supported locale code is left in place:
// "/xx/admin" → ("fr", "/xx/admin").
func Split(path string) (locale, rest string) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, remainder, found := strings.Cut(trimmed, "/")
	if !IsSupported(seg) {
		return Default, path
	}
	if !found {
		return seg, "/"
	}
	return seg, "/" + remainder
}

// Qualify prefixes a logical path with a locale. The default locale stays
// unprefixed, so Qualify(Default, "/contact") is "/contact" and
// Qualify("en", "/") is "/en".
func Qualify(locale, logicalPath string) string {
	if locale == Default {
		return logicalPath
	}
	if logicalPath == "/" {
		return "/" + locale
	}
	return "/" + locale + logicalPath
}

// Expand returns the locale-qualified form of logicalPath for every
// supported locale, default included.
func Expand(logicalPath string) []string {
	paths := make([]string, 0, len(Supported))
	for _, l := range Supported {
		paths = append(paths, Qualify(l, logicalPath))
	}
	return paths
}
