package dependency

import "strings"

// ParsePath derives the default local path for a repository location.
//
//  1. Keep only the last "/" component.
//  2. Drop everything up to and including the last "-" (owner/org prefixes).
//  3. Drop a trailing ".git", any case.
//  4. Turn dots into directories: "my.package.path" -> "my/package/path".
//
// https://example.com/owner/my-info-my.package.path.git yields my/package/path.
func ParsePath(location string) string {
	tail := location
	if i := strings.LastIndex(tail, "/"); i >= 0 {
		tail = tail[i+1:]
	}
	if i := strings.LastIndex(tail, "-"); i >= 0 {
		tail = tail[i+1:]
	}
	if n := len(tail); n >= 4 && strings.EqualFold(tail[n-4:], ".git") {
		tail = tail[:n-4]
	}
	return strings.ReplaceAll(tail, ".", "/")
}
