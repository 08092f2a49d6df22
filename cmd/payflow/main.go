package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/aalvaropc/payflow/internal/cli"
)

func main() {
	cli.Execute()
}
