package main

import "github.com/twiced-technology-gmbh/taskline/cmd"

func main() {
	cmd.Execute()
}
