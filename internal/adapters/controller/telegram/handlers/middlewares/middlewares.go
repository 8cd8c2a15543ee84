package middlewares

import (
	"context"

	"github.com/Badsnus/qr-studio/cmd/bot"
	"github.com/Badsnus/qr-studio/internal/adapters/database/postgres"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
)

type userStorage interface {
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)
}

type Handler struct {
	layout      *layout.Layout
	logger      *types.Logger
	userStorage userStorage
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		layout:      b.Layout,
		logger:      b.Logger,
		userStorage: postgres.NewUserStorage(b.DB),
	}
}

// TrackUser keeps the stored name of the sender current.
func (h Handler) TrackUser(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil {
			return next(c)
		}

		_, err := h.userStorage.Upsert(context.Background(), &entity.User{
			ID:        sender.ID,
			FirstName: sender.FirstName,
			Username:  sender.Username,
		})
		if err != nil {
			h.logger.Errorf("(user: %d) error while saving user: %v", sender.ID, err)
			return c.Send(
				h.layout.Text(c, "technical_issues", err.Error()),
				h.layout.Markup(c, "core:hide"),
			)
		}
		return next(c)
	}
}
