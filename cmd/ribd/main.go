// Command ribd runs the routing daemon: the OSPF, IS-IS and BGP protocol
// engines, their shared LSDB and SPF scheduler, and the northbound
// configuration/state API.
package main

import (
	"fmt"
	"os"

	"github.com/routeflow/ribd/cmd/ribd/commands"

	// Import prometheus metrics to register init() functions.
	_ "github.com/routeflow/ribd/pkg/metrics/prometheus"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
