// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetVersionString(t *testing.T) {
	s := GetVersionString()
	require.True(t, strings.HasPrefix(s, "signalign "+GetVersion()))
}
