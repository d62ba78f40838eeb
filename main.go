package main

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/snowie2000/hdhomerun/cmd"
)

func main() {
	cmd.Execute()
}
