package studio

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/internal/domain/utils"
	"github.com/nlypage/intele/collector"
	tele "gopkg.in/telebot.v3"
)

func (h *Handler) startDraft(c tele.Context) error {
	content := strings.TrimSpace(c.Message().Payload)
	codeType := utils.GuessType(content)
	if content == "" {
		var err error
		content, codeType, err = h.askContent(c)
		if err != nil || content == "" {
			return err
		}
	}

	h.logger.Infof("(user: %d) start %s draft", c.Sender().ID, codeType)
	if _, err := h.drafts.Start(context.Background(), c.Sender().ID, content, codeType); err != nil {
		return h.fail(c, err)
	}
	return c.Send(h.layout.Text(c, "draft_started"))
}

// askContent prompts for the draft content. An empty result means the prompt was canceled.
func (h *Handler) askContent(c tele.Context) (string, entity.CodeType, error) {
	inputCollector := collector.New()
	inputCollector.Collect(c.Message())
	_ = inputCollector.Send(c, h.layout.Text(c, "draft_prompt"))

	for {
		message, canceled, errGet := h.input.Get(context.Background(), c.Sender().ID, 0)
		if message != nil {
			inputCollector.Collect(message)
		}
		switch {
		case canceled:
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true, ExcludeLast: true})
			return "", "", nil
		case errGet != nil:
			h.logger.Errorf("(user: %d) error while input draft content: %v", c.Sender().ID, errGet)
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
			return "", "", h.fail(c, errGet)
		}

		content, codeType := utils.MessageContent(message)
		if content == "" {
			_ = inputCollector.Send(c, h.layout.Text(c, "draft_prompt"))
			continue
		}
		_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true, ExcludeLast: true})
		return content, codeType, nil
	}
}

// edit applies fn to the draft and reports the result.
func (h *Handler) edit(c tele.Context, fn func(*service.Session) error) error {
	session, err := h.drafts.Edit(context.Background(), c.Sender().ID, fn)
	if err != nil {
		if errors.Is(err, errStyleUsage) {
			return c.Send(h.layout.Text(c, "style_usage"))
		}
		return h.fail(c, err)
	}

	snap := session.Recompute()
	if snap.Assembled.Overridden() {
		return c.Send(h.layout.Text(c, "level_raised", snap.Assembled))
	}
	return c.Send(h.layout.Text(c, "draft_updated"))
}

func (h *Handler) setType(c tele.Context) error {
	value := strings.ToLower(strings.TrimSpace(c.Message().Payload))
	if value == "" {
		return c.Send(h.layout.Text(c, "type_usage"))
	}
	return h.edit(c, func(s *service.Session) error {
		s.SetType(entity.CodeType(value))
		return nil
	})
}

func (h *Handler) style(c tele.Context) error {
	key, value, ok := strings.Cut(strings.TrimSpace(c.Message().Payload), " ")
	if !ok {
		return c.Send(h.layout.Text(c, "style_usage"))
	}
	return h.edit(c, func(s *service.Session) error {
		style, err := applyStyle(s.Style(), key, value)
		if err != nil {
			return err
		}
		s.SetStyle(style)
		return nil
	})
}

func (h *Handler) undo(c tele.Context) error {
	undone := false
	_, err := h.drafts.Edit(context.Background(), c.Sender().ID, func(s *service.Session) error {
		undone = s.Undo()
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	if !undone {
		return c.Send(h.layout.Text(c, "nothing_to_undo"))
	}
	return c.Send(h.layout.Text(c, "undo_done"))
}

func (h *Handler) card(c tele.Context) error {
	switch strings.TrimSpace(c.Message().Payload) {
	case "on":
		return h.edit(c, func(s *service.Session) error {
			if s.Template() == nil {
				t := entity.DefaultTemplate()
				s.SetTemplate(&t)
			}
			return nil
		})
	case "off":
		return h.edit(c, func(s *service.Session) error {
			s.SetTemplate(nil)
			return nil
		})
	default:
		return c.Send(h.layout.Text(c, "card_usage"))
	}
}

func (h *Handler) title(c tele.Context) error {
	text := strings.TrimSpace(c.Message().Payload)
	return h.editTemplate(c, func(t *entity.CardTemplate) { t.Title = text })
}

func (h *Handler) subtitle(c tele.Context) error {
	text := strings.TrimSpace(c.Message().Payload)
	return h.editTemplate(c, func(t *entity.CardTemplate) { t.Subtitle = text })
}

func (h *Handler) editTemplate(c tele.Context, fn func(*entity.CardTemplate)) error {
	return h.edit(c, func(s *service.Session) error {
		t := entity.DefaultTemplate()
		if current := s.Template(); current != nil {
			t = *current
		}
		fn(&t)
		s.SetTemplate(&t)
		return nil
	})
}

// fieldAt returns the id of the field at the 1-based position.
func fieldAt(s *service.Session, position string) (string, error) {
	n, err := strconv.Atoi(position)
	t := s.Template()
	if err != nil || t == nil || n < 1 || n > len(t.Fields) {
		return "", errorz.ErrFieldNotFound
	}
	return t.Fields[n-1].ID, nil
}

func (h *Handler) field(c tele.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return c.Send(h.layout.Text(c, "field_usage"))
	}

	switch args[0] {
	case "add":
		kind := entity.FieldKind(args[1])
		if _, err := entity.NewFieldContent(kind, ""); err != nil {
			return c.Send(h.layout.Text(c, "field_usage"))
		}
		var position int
		_, err := h.drafts.Edit(context.Background(), c.Sender().ID, func(s *service.Session) error {
			id, err := s.AddField(kind)
			if err != nil {
				return err
			}
			if len(args) > 2 {
				value := strings.Join(args[2:], " ")
				if err = s.UpdateField(id, service.FieldPatch{Value: &value}); err != nil {
					return err
				}
			}
			position = len(s.Template().Fields)
			return nil
		})
		if err != nil {
			return h.fail(c, err)
		}
		return c.Send(h.layout.Text(c, "field_added", position))
	case "mv":
		if len(args) < 3 {
			return c.Send(h.layout.Text(c, "field_usage"))
		}
		to, err := strconv.Atoi(args[2])
		if err != nil {
			return c.Send(h.layout.Text(c, "field_usage"))
		}
		return h.edit(c, func(s *service.Session) error {
			id, err := fieldAt(s, args[1])
			if err != nil {
				return err
			}
			return s.MoveField(id, to-1)
		})
	case "rm":
		return h.edit(c, func(s *service.Session) error {
			id, err := fieldAt(s, args[1])
			if err != nil {
				return err
			}
			return s.RemoveField(id)
		})
	default:
		return c.Send(h.layout.Text(c, "field_usage"))
	}
}

func (h *Handler) preview(c tele.Context) error {
	format, err := formatArg(c.Args(), 0)
	if err != nil {
		return h.fail(c, err)
	}
	blob, err := h.drafts.Preview(context.Background(), c.Sender().ID, format, format == service.FormatSVG)
	if err != nil {
		return h.fail(c, err)
	}
	return sendBlob(c, service.FileName("draft", format), blob)
}

func (h *Handler) commit(c tele.Context) error {
	record, err := h.drafts.Commit(context.Background(), c.Sender().ID)
	if err != nil {
		return h.fail(c, err)
	}
	h.logger.Infof("(user: %d) committed draft as %s", c.Sender().ID, record.ID)
	return c.Send(h.layout.Text(c, "draft_committed", record.ID))
}

func (h *Handler) discard(c tele.Context) error {
	if err := h.drafts.Discard(context.Background(), c.Sender().ID); err != nil {
		return h.fail(c, err)
	}
	return c.Send(h.layout.Text(c, "draft_discarded"))
}
