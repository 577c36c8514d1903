package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gloryco/thewell/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.DefaultDeps()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
