package main

import "laim/cmd"

func main() {
	cmd.Execute()
}
