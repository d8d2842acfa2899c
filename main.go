package main

import "github.com/grdimg/grd2png/cmd"

func main() {
	cmd.Execute()
}
