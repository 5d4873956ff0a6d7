// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	version     = "0.1.0"
	buildTime   string
	buildCommit string
)

func GetVersion() string {
	return version
}

func commit() string {
	if len(buildCommit) != 0 {
		return buildCommit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "none"
}

func GetVersionString() string {
	if len(buildTime) == 0 {
		return fmt.Sprintf("signalign %s, %s/%s, %s, %s", version, runtime.GOOS, runtime.GOARCH, runtime.Version(), commit())
	}
	return fmt.Sprintf("signalign %s, %s/%s, %s, %s, %s", version, runtime.GOOS, runtime.GOARCH, runtime.Version(), commit(), buildTime)
}
