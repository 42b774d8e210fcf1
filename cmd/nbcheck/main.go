// nbcheck audits the asset dependencies of a Neverball level set and
// packages the genuinely new addon files for distribution.
package main

import (
	"os"

	"github.com/parasti/neverball-checker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
