package main

import "github.com/ValentinKolb/tcio/cmd"

func main() {
	cmd.Execute()
}
