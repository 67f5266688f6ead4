package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		var re reportedError
		if !errors.As(err, &re) {
			fmt.Fprintln(os.Stderr, "strictjson:", err)
		}
		os.Exit(1)
	}
}
