package main

import (
	"fmt"
	"os"

	"blog/service"
)

func main() {
	app := service.NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
