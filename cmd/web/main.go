package main

import "givegot_backend/internal/app"

func main() {
	app.Run()
}
