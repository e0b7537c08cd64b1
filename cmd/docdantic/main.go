// Command docdantic renders data model declarations referenced from Markdown
// documents.
package main

import (
	"io"
	"os"
	"runtime/debug"

	"github.com/goliatone/go-docdantic/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			cli.Errorf(errWriter, "panic recovered: %v\n%s", r, debug.Stack())
			exitCode = 1
		}
	}()

	root := cli.NewRootCmd(version)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		cli.Errorf(root.ErrOrStderr(), "%v", err)
		return 1
	}
	return 0
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok && version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}
