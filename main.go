package main

import (
	"os"

	"github.com/ogri-la/card-list-validator-go/src/cli"
)

var APP_VERSION = "unreleased"

func main() {
	cli.Version = APP_VERSION
	os.Exit(cli.Run(os.Args, os.Stdout, os.Stderr))
}
