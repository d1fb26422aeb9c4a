package main

import "github.com/kozaktomas/name-that-face/cmd"

func main() {
	cmd.Execute()
}
