package main

import (
	"log"

	"github.com/codewit-us/codeval/config"
	"github.com/codewit-us/codeval/server"
)

func main() {
	cfg, err := config.Init()
	if err != nil {
		log.Fatal(err)
	}
	server.Init(cfg)
}
