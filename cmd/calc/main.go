// Package main provides the entry point for the calc CLI.
package main

import "yqhp/calc-engine/cmd"

func main() {
	cmd.Execute()
}
