package main

import (
	"log"

	"github.com/MxBrndl/Demandes-ESEB/internal/api"
)

func main() {
	log.Println("App start")
	api.StartServer()
	log.Println("App terminated")
}
