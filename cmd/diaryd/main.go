package main

import "diary/cmd/diaryd/cmd"

func main() {
	cmd.Execute()
}
