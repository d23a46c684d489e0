package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/pracazumbi/presenca-api/cmd/app"
)

// @contact.name   Praça Presença
//
// @license.name  MIT
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
