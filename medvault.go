package main

import (
	"github.com/medvault-org/medvault/api"
)

func main() {
	api.MainLoop()
}
