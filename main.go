/**
 * Copyright 2015 Zach Kanzler
 */

package main

import "github.com/they4kman/minefield/cmd"

func main() {
	cmd.Execute()
}
