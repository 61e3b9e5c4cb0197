package main

import "github.com/KaramelBytes/fitdash/cmd"

func main() {
	cmd.Execute()
}
