// machcost is the command-line and HTTP front end of the CNC machining cost
// estimator.
//
//	machcost estimate --machine-hours 1 --setup-hours 2 --setups 2 -q 10
//	machcost serve --config machcost.yaml
package main

import (
	"os"

	"github.com/piwi3910/MachCost/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
