package main

import (
	"github.com/cloudnav/cloudnav/internal/cli"
)

func main() {
	cli.Execute()
}
