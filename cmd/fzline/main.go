package main

import (
	"os"

	"github.com/kk-code-lab/fzline/internal/cli"
)

func main() {
	code := cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(int(code))
}
