// Package main is the entry point for the gridview CLI.
package main

import "github.com/mesh-intelligence/datagrid/internal/cli"

func main() {
	cli.Execute()
}
