package main

import "github.com/rdxa101ou/bookvibe/cmd/cli/command"

func main() {
	command.Execute()
}
