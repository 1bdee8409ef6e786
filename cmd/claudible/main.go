// Command claudible plays ambient sound while a terminal program writes
// output. By default it wraps `claude`; with --pipe it listens to stdin.
package main

import "os"

func main() {
	os.Exit(Execute(os.Args[1:]))
}
