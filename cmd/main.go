package main

import (
	"log"

	"github.com/Badsnus/qr-studio/cmd/bot"
	"github.com/Badsnus/qr-studio/internal/adapters/config"
	setupBot "github.com/Badsnus/qr-studio/internal/adapters/controller/telegram/setup"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	b, err := bot.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	if err = setupBot.Setup(b); err != nil {
		log.Panic(err)
	}

	b.Start()
}
