package main

import "teamvault_backend/internal/app"

func main() {
	app.Run()
}
