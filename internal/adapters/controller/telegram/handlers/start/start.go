package start

import (
	"context"
	"strings"

	"github.com/Badsnus/qr-studio/cmd/bot"
	"github.com/Badsnus/qr-studio/internal/adapters/database/postgres"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
)

type userStorage interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
}

type Handler struct {
	userStorage userStorage
	layout      *layout.Layout
	logger      *types.Logger
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		userStorage: postgres.NewUserStorage(b.DB),
		layout:      b.Layout,
		logger:      b.Logger,
	}
}

func (h *Handler) Setup(group *tele.Group) {
	group.Handle("/start", h.Start)
	group.Handle("/watermark", h.Watermark)
	group.Handle(h.layout.Callback("core:hide"), h.Hide)
}

func (h *Handler) Start(c tele.Context) error {
	h.logger.Infof("(user: %d) press start button", c.Sender().ID)
	return c.Send(h.layout.Text(c, "start", c.Sender().FirstName))
}

func (h *Handler) Hide(c tele.Context) error {
	return c.Delete()
}

// Watermark switches the export watermark: /watermark on [text] or /watermark off.
func (h *Handler) Watermark(c tele.Context) error {
	args := c.Args()
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		return c.Send(h.layout.Text(c, "watermark_usage"))
	}

	user, err := h.userStorage.Get(context.Background(), c.Sender().ID)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting user from db: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues", err.Error()),
			h.layout.Markup(c, "core:hide"),
		)
	}

	user.WatermarkEnabled = args[0] == "on"
	if user.WatermarkEnabled && len(args) > 1 {
		user.WatermarkText = strings.Join(args[1:], " ")
	}
	if _, err = h.userStorage.Update(context.Background(), user); err != nil {
		h.logger.Errorf("(user: %d) error while updating user: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues", err.Error()),
			h.layout.Markup(c, "core:hide"),
		)
	}
	if user.WatermarkEnabled {
		return c.Send(h.layout.Text(c, "watermark_on"))
	}
	return c.Send(h.layout.Text(c, "watermark_off"))
}
