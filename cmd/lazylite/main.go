// lazylite browses the tables of a SQLite file or PostgreSQL database
// in a keyboard-driven terminal UI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
