package studio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Badsnus/qr-studio/cmd/bot"
	"github.com/Badsnus/qr-studio/internal/adapters/database/postgres"
	"github.com/Badsnus/qr-studio/internal/adapters/database/redis/callbacks"
	"github.com/Badsnus/qr-studio/internal/adapters/export"
	"github.com/Badsnus/qr-studio/internal/adapters/storage/telegram"
	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/pkg/logger"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	"github.com/Badsnus/qr-studio/pkg/smtp"
	"github.com/nlypage/intele"
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
)

const callbackTTL = time.Hour

type Handler struct {
	cards     *service.CardService
	drafts    *service.DraftService
	callbacks *callbacks.Storage
	input     *intele.InputManager
	layout    *layout.Layout
	logger    *types.Logger
}

func New(b *bot.Bot) (*Handler, error) {
	exportLogger, err := logger.Named("export")
	if err != nil {
		return nil, err
	}
	assets, err := telegram.NewAssetStore(b.Bot, viper.GetInt64("bot.storage-chat-id"))
	if err != nil {
		return nil, err
	}

	savers := export.Savers{export.NewFileSaver(viper.GetString("export.output-dir"))}
	if to := viper.GetString("export.mail-to"); to != "" && b.SMTPDialer != nil {
		client := smtp.NewClient(b.SMTPDialer, smtp.Config{
			From:   viper.GetString("service.smtp.email"),
			Domain: viper.GetString("service.smtp.domain"),
		})
		savers = append(savers, export.NewMailSaver(client, to))
	}

	exportOptions := service.ExportOptions{
		SettleDelay: viper.GetDuration("export.settle-delay"),
		NarrowWidth: viper.GetInt("export.narrow-viewport"),
		DefaultSize: viper.GetInt("export.default-size"),
	}
	cards := service.NewCardService(
		postgres.NewRecordStorage(b.DB),
		postgres.NewUserStorage(b.DB),
		assets,
		savers,
		exportLogger,
		service.CardServiceConfig{
			Origin:        viper.GetString("app.origin"),
			ViewportWidth: viper.GetInt("export.viewport-width"),
			Export:        exportOptions,
		},
	)
	drafts := service.NewDraftService(b.Redis.Drafts, cards, savers, exportLogger, service.DraftServiceConfig{
		Origin:       viper.GetString("app.origin"),
		HistoryLimit: viper.GetInt("history.limit"),
		Export:       exportOptions,
	})

	return &Handler{
		cards:     cards,
		drafts:    drafts,
		callbacks: b.Redis.Callbacks,
		input:     b.Input,
		layout:    b.Layout,
		logger:    b.Logger,
	}, nil
}

func (h *Handler) Setup(group *tele.Group) {
	group.Handle("/draft", h.startDraft)
	group.Handle("/type", h.setType)
	group.Handle("/style", h.style)
	group.Handle("/undo", h.undo)
	group.Handle("/card", h.card)
	group.Handle("/title", h.title)
	group.Handle("/subtitle", h.subtitle)
	group.Handle("/field", h.field)
	group.Handle("/preview", h.preview)
	group.Handle("/commit", h.commit)
	group.Handle("/discard", h.discard)

	group.Handle("/list", h.list)
	group.Handle("/export", h.exportCard)
	group.Handle("/code", h.exportCode)
	group.Handle("/save", h.save)
	group.Handle("/nologo", h.removeLogo)
	group.Handle(tele.OnPhoto, h.logo)
	group.Handle(h.layout.Callback("format"), h.formatChosen)
}

// fail answers with the message matching err and logs unexpected errors.
func (h *Handler) fail(c tele.Context, err error) error {
	key := ""
	switch {
	case errors.Is(err, errorz.ErrRecordNotFound):
		key = "record_not_found"
	case errors.Is(err, errorz.Forbidden):
		key = "forbidden"
	case errors.Is(err, errorz.ErrRecordExpired):
		key = "record_expired"
	case errors.Is(err, errorz.ErrScanLimitReached):
		key = "scan_limit_reached"
	case errors.Is(err, errorz.ErrExportInProgress):
		key = "export_in_progress"
	case errors.Is(err, errorz.ErrUnsupportedFormat):
		key = "unsupported_format"
	case errors.Is(err, errorz.ErrVectorUnavailable):
		key = "vector_unavailable"
	case errors.Is(err, errorz.ErrDraftNotFound):
		key = "draft_not_found"
	case errors.Is(err, errorz.ErrFieldNotFound):
		key = "field_not_found"
	}
	if key != "" {
		return c.Send(h.layout.Text(c, key))
	}

	h.logger.Errorf("(user: %d) %v", c.Sender().ID, err)
	return c.Send(
		h.layout.Text(c, "technical_issues", err.Error()),
		h.layout.Markup(c, "core:hide"),
	)
}

func sendBlob(c tele.Context, name string, blob service.Blob) error {
	return c.Send(&tele.Document{
		File:     tele.FromReader(bytes.NewReader(blob.Data)),
		FileName: name,
		MIME:     blob.MIME,
	})
}

// formatArg parses the optional format argument, png by default.
func formatArg(args []string, i int) (service.Format, error) {
	if len(args) <= i {
		return service.FormatPNG, nil
	}
	return service.ParseFormat(args[i])
}

func (h *Handler) list(c tele.Context) error {
	records, err := h.cards.GetByUser(context.Background(), c.Sender().ID)
	if err != nil {
		return h.fail(c, err)
	}
	if len(records) == 0 {
		return c.Send(h.layout.Text(c, "list_empty"))
	}
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, h.layout.Text(c, "list_item", r))
	}
	return c.Send(strings.Join(lines, "\n"))
}

func (h *Handler) exportCard(c tele.Context) error {
	return h.sendRecord(c, "/export", false)
}

func (h *Handler) exportCode(c tele.Context) error {
	return h.sendRecord(c, "/code", true)
}

// sendRecord replies with the exported record, or with format buttons when no format is given.
func (h *Handler) sendRecord(c tele.Context, command string, codeOnly bool) error {
	args := c.Args()
	if len(args) == 0 {
		return c.Send(h.layout.Text(c, "usage_id", command))
	}
	if len(args) == 1 {
		return h.askFormat(c, args[0], codeOnly)
	}
	format, err := formatArg(args, 1)
	if err != nil {
		return h.fail(c, err)
	}
	return h.reply(c, args[0], format, codeOnly)
}

func (h *Handler) reply(c tele.Context, id string, format service.Format, codeOnly bool) error {
	h.logger.Infof("(user: %d) export %s as %s", c.Sender().ID, id, format)
	blob, err := h.cards.Blob(context.Background(), c.Sender().ID, id, format, codeOnly)
	if err != nil {
		return h.fail(c, err)
	}
	return sendBlob(c, service.FileName("qr-"+id, format), blob)
}

func (h *Handler) askFormat(c tele.Context, id string, codeOnly bool) error {
	formats := []service.Format{service.FormatPNG, service.FormatJPEG, service.FormatWebP}
	if codeOnly {
		formats = append(formats, service.FormatSVG)
	}

	markup := c.Bot().NewMarkup()
	var row []tele.Btn
	for _, f := range formats {
		callbackID, err := h.callbacks.Set(context.Background(), fmt.Sprintf("%s|%s|%t", id, f, codeOnly), callbackTTL)
		if err != nil {
			return h.fail(c, err)
		}
		row = append(row, *h.layout.Button(c, "format", struct {
			ID    string
			Label string
		}{
			ID:    callbackID,
			Label: strings.ToUpper(string(f)),
		}))
	}
	markup.Inline(markup.Row(row...))
	return c.Send(h.layout.Text(c, "choose_format"), markup)
}

func (h *Handler) formatChosen(c tele.Context) error {
	data, err := h.callbacks.Get(context.Background(), c.Callback().Data)
	if err != nil {
		return h.fail(c, err)
	}
	parts := strings.Split(data, "|")
	if len(parts) != 3 {
		return h.fail(c, fmt.Errorf("malformed callback data %q", data))
	}
	format, err := service.ParseFormat(parts[1])
	if err != nil {
		return h.fail(c, err)
	}
	_ = c.Delete()
	return h.reply(c, parts[0], format, parts[2] == "true")
}

func (h *Handler) save(c tele.Context) error {
	args := c.Args()
	if len(args) == 0 {
		return c.Send(h.layout.Text(c, "usage_id", "/save"))
	}
	format, err := formatArg(args, 1)
	if err != nil {
		return h.fail(c, err)
	}
	name, err := h.cards.Export(context.Background(), c.Sender().ID, args[0], format, format == service.FormatSVG)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Send(h.layout.Text(c, "exported", name))
}

func (h *Handler) logo(c tele.Context) error {
	id := strings.TrimSpace(c.Message().Caption)
	if id == "" {
		return c.Send(h.layout.Text(c, "logo_usage"))
	}
	photo := c.Message().Photo
	rc, err := c.Bot().File(&photo.File)
	if err != nil {
		return h.fail(c, err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err = buf.ReadFrom(rc); err != nil {
		return h.fail(c, err)
	}
	if _, err = h.cards.ReplaceLogo(context.Background(), c.Sender().ID, id, "logo-"+id+".jpg", buf.Bytes()); err != nil {
		return h.fail(c, err)
	}
	return c.Send(h.layout.Text(c, "logo_updated"))
}

func (h *Handler) removeLogo(c tele.Context) error {
	if len(c.Args()) == 0 {
		return c.Send(h.layout.Text(c, "usage_id", "/nologo"))
	}
	if _, err := h.cards.RemoveLogo(context.Background(), c.Sender().ID, c.Args()[0]); err != nil {
		return h.fail(c, err)
	}
	return c.Send(h.layout.Text(c, "logo_removed"))
}
