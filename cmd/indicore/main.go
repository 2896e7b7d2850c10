package main

import (
	"github.com/tradelab/indicore/pkg/cmd"
)

func main() {
	cmd.Execute()
}
