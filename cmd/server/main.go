package main

import "evalx/internal/app/server"

func main() {
	server.Run()
}
