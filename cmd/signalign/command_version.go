// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/antgroup/signalign/pkg/version"
)

type Version struct{}

func (c *Version) Run(g *Globals) error {
	fmt.Println(version.GetVersionString())
	return nil
}
