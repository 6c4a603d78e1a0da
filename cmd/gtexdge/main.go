// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/gtexdge/gtexdge"

func main() {
	gtexdge.Main()
}
