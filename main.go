package main

import "aisolutions-backend/commands"

func main() {
	commands.Execute()
}
