package main

import "github.com/ByLCY/pagedraw/cmd"

func main() {
	cmd.Execute()
}
