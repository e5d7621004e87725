package main

import (
	"os"
)

func main() {
	if err := appCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
