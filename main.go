package main

import (
	"fmt"
	"os"

	"github.com/francescoattisano63-source/cyber-omega-guardian/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "guardian:", err)
		os.Exit(1)
	}
}
