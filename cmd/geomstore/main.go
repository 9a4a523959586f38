// Command geomstore stores geometries and features in a memory,
// FlatGeobuf, Redis or PostgreSQL driver.
package main

import (
	"os"

	"github.com/tingold/orb-geometry/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
