/*
Copyright © 2024 The calltree Authors
*/
package main

import (
	"fmt"
	"os"

	"github.com/Emyrk/calltree/cmd"
)

func main() {
	err := cmd.New().RootCmd().Invoke().WithOS().Run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
