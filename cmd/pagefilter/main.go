// pagefilter prunes mini-program page manifests with whitelist and blacklist rules.
package main

import (
	"os"

	"github.com/hupe1980/pagefilter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
