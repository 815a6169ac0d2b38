// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package link

import (
	"errors"
	"net/url"
	"strings"
	"unicode"
)

var (
	// ErrMissingLeadingSlash is returned for links that are not root-relative
	ErrMissingLeadingSlash = errors.New(`must start with "/"`)
	// ErrMissingTrailingSlash is returned for links without a trailing slash
	ErrMissingTrailingSlash = errors.New(`must end with "/"`)
	// ErrEmptySegment is returned for links containing "//"
	ErrEmptySegment = errors.New("must not contain empty path segments")
	// ErrWhitespace is returned for links containing whitespace
	ErrWhitespace = errors.New("must not contain whitespace")
	// ErrDotSegment is returned for links containing "." or ".." segments
	ErrDotSegment = errors.New(`must not contain "." or ".." segments`)
	// ErrNotAPath is returned for links carrying a scheme, host, query or fragment
	ErrNotAPath = errors.New("must be a plain path without scheme, host, query or fragment")
)

// ValidateRootRelative checks that l is a well-formed root-relative path
// beginning and ending with "/", e.g. /guides/getting-started/
func ValidateRootRelative(l string) error {
	if !strings.HasPrefix(l, "/") {
		return ErrMissingLeadingSlash
	}
	if !strings.HasSuffix(l, "/") {
		return ErrMissingTrailingSlash
	}
	if strings.IndexFunc(l, unicode.IsSpace) >= 0 {
		return ErrWhitespace
	}
	if strings.Contains(l, "//") {
		return ErrEmptySegment
	}
	for _, segment := range Segments(l) {
		if segment == "." || segment == ".." {
			return ErrDotSegment
		}
	}
	u, err := url.Parse(l)
	if err != nil || u.Scheme != "" || u.Host != "" || u.RawQuery != "" || u.Fragment != "" || strings.ContainsAny(l, "?#") {
		return ErrNotAPath
	}
	return nil
}

// Segments returns the path segments of a root-relative link.
// The root link "/" has no segments.
func Segments(l string) []string {
	trimmed := strings.Trim(l, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// IsAbsoluteURL returns true for links with a scheme and host, e.g. https://example.com/a.png
func IsAbsoluteURL(l string) bool {
	u, err := url.Parse(l)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
