// Command libctl runs the library circulation API and offers operator
// tooling: migrations, one-off lends and returns, and reports.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/heartmarshall/library-backend/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "libctl:", err)
		os.Exit(1)
	}
}
