package main

import "orderetl/internal/cmd"

func main() {
	cmd.Execute()
}
