package main

import "github.com/Bitlatte/areyou/cmd"

func main() {
	cmd.Execute()
}
