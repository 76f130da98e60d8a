package main

import (
	"conclave.network/conclave/cmd/conclave/cmd"
)

func main() {
	cmd.Execute()
}
