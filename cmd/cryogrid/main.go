/*
Copyright © 2026 the Cryogrid authors.
This file is part of Cryogrid.

Cryogrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Cryogrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Cryogrid.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command cryogrid is a command-line interface for building grid
// definition files for ice model coupling.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/cryogrid/cryogridutil"
)

func main() {
	if err := cryogridutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
