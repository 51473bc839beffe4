// mqauthctl administers the broker's authorization metadata: user accounts,
// ACL policies, and ad-hoc decision checks against the live pipeline.
package main

import (
	"os"

	"github.com/LittleBoy18/rocketmq/cmd/mqauthctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
