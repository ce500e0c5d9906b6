package main

import "github.com/medvault-org/medvault/cmd/medvault/command"

func main() {
	command.Execute()
}
