package main

import (
	"log"

	"github.com/patric-chuzhbe/localtodo/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalln("application init error:", err)
	}

	err = application.Run()
	application.Close()
	if err != nil {
		log.Fatalln("application run error:", err)
	}
}
