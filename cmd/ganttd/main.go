package main

import (
	"fmt"
	"os"

	"github.com/sandeepkv93/ganttd/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ganttd failed: %v\n", err)
		os.Exit(1)
	}
}
