package main

import "tourbay_backend/internal/app"

func main() {
	app.Run()
}
