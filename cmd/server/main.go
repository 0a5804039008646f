package main

import "github.com/DRSN-tech/go-storefront/internal/app"

func main() {
	app.RunServer()
}
