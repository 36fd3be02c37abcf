package main

import "github.com/ohamel-softwaresecure/souffle/internal/cmd"

func main() {
	cmd.Execute()
}
