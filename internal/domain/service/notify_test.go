package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/Badsnus/qr-studio/pkg/logger"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

type fakeNotifyBot struct {
	mu   sync.Mutex
	sent []string
}

func (b *fakeNotifyBot) ChatByID(id int64) (*tele.Chat, error) {
	return &tele.Chat{ID: id}, nil
}

func (b *fakeNotifyBot) Send(_ tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	text, _ := what.(string)
	b.sent = append(b.sent, text)
	if len(b.sent)%2 == 0 {
		return nil, errors.New("flood wait")
	}
	return &tele.Message{}, nil
}

func TestLogHookFiltersByLevelConcurrently(t *testing.T) {
	bot := &fakeNotifyBot{}
	hook, err := NewNotifyService(bot, logger.Nop()).LogHook(42, zapcore.WarnLevel)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			level := zapcore.InfoLevel
			if i%2 == 0 {
				level = zapcore.ErrorLevel
			}
			hook(types.Log{Level: level, Message: "export failed"})
		}(i)
	}
	wg.Wait()

	assert.Len(t, bot.sent, 10)
	for _, text := range bot.sent {
		assert.Contains(t, text, "export failed")
	}
}
