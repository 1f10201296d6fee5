// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"
)

// GetMembraneFlags parses the extra-flags string of membrane elements
//  Example: "!thick:0.1 !debug:1"
func GetMembraneFlags(extra string) (thickness float64, debug bool) {

	// defaults
	thickness = 1.0
	debug = false

	// flag: thickness of membrane
	if s_thick, found := io.Keycode(extra, "thick"); found {
		thickness = io.Atof(s_thick)
	}

	// flag: debug
	if s_debug, found := io.Keycode(extra, "debug"); found {
		debug = io.Atob(s_debug)
	}
	return
}
