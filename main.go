package main

import "kanbanterm/cmd"

func main() {
	cmd.Execute()
}
