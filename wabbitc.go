package main

import "wabbitc/cmd"

func main() {
	cmd.Execute()
}
