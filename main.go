package main

import "github.com/MeKo-Tech/colorengine/internal/cmd"

func main() {
	cmd.Execute()
}
