package setup

import (
	"github.com/Badsnus/qr-studio/cmd/bot"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/telegram/handlers/middlewares"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/telegram/handlers/start"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/telegram/handlers/studio"
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

func Setup(b *bot.Bot) error {
	// Pre-setup and global middlewares
	middle := middlewares.New(b)
	startHandler := start.New(b)
	studioHandler, err := studio.New(b)
	if err != nil {
		return err
	}

	if viper.GetBool("settings.debug") {
		b.Use(middleware.Logger())
	}
	b.Use(b.Layout.Middleware("en"))
	b.Use(middleware.AutoRespond())
	b.Handle(tele.OnText, b.Input.Handler())
	b.Handle(tele.OnLocation, b.Input.Handler())
	b.Handle(tele.OnContact, b.Input.Handler())
	b.Use(middle.TrackUser)

	// Setup handlers
	startHandler.Setup(b.Group())
	studioHandler.Setup(b.Group())
	return nil
}
