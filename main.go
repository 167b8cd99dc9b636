package main

import "github.com/theirongolddev/ridewrap/cmd"

func main() {
	cmd.Execute()
}
