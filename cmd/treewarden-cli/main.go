package main

import "treewarden/cmd/treewarden-cli/cmd"

func main() {
	cmd.Execute()
}
