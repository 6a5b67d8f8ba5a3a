package main

import "jobwatch/cmd"

func main() {
	cmd.Execute()
}
