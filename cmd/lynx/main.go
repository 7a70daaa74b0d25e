package main

import "github.com/paoloronco/lynx/cmd/lynx/cmd"

func main() {
	cmd.Execute()
}
