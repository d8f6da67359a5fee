package main

import (
	"os"

	"admaker/cmd"
)

// @title        AdMaker API
// @version      1.0
// @description  AI commercial video generation service
// @BasePath     /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
