package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/culinary-hub/internal/cli"
)

func main() {
	cli.Execute()
}
