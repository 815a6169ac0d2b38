// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
)

// Version is a global variable which is set during compile time via -ld-flags in the `go build` process.
// It has the form v<X>.<Y>.<Z> for released binaries.
var Version = "binary was not built properly"

// Info describes the running binary, e.g. "navforge v0.3.0 (go1.24.1 linux/amd64)"
func Info() string {
	return fmt.Sprintf("navforge %s (%s %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
