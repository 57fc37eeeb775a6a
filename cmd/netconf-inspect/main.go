// Command netconf-inspect is a thin illustrative harness over the netconf
// core. SARIF/JSON output and external rule-pack loading are out of scope
// here; this is a demo inspector, not the full reporting tool.
package main

import (
	"fmt"
	"os"

	"github.com/cedarpeak/netconf/cmd/netconf-inspect/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
