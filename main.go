package main

import "github.com/ccatp/fpsim/internal/fpprog"

func main() {
	fpprog.Main()
}
