package main

import (
	"github.com/array-qc/strandcheck/cmd"
)

func main() {
	cmd.Execute()
}
