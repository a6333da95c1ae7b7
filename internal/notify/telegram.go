package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// TelegramSink posts booking conversations to a Telegram chat. Sends
// are rate limited so a burst of owner decisions cannot trip the bot
// API limits.
type TelegramSink struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewTelegramSink creates the sink. perSecond/burst bound the send
// rate; chatID is the channel the shop side of conversations lands in.
func NewTelegramSink(token string, chatID int64, debug bool, perSecond float64, burst int, logger zerolog.Logger) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	bot.Debug = debug

	return &TelegramSink{
		bot:     bot,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  logger.With().Str("component", "notify").Logger(),
	}, nil
}

// CreateConversation formats and sends the conversation's initial
// message.
func (s *TelegramSink) CreateConversation(ctx context.Context, conv Conversation) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "💬 %s\n", conv.ShopName)
	if names := participantList(conv); names != "" {
		fmt.Fprintf(&sb, "Participants: %s\n", names)
	}
	sb.WriteString("\n")
	sb.WriteString(conv.InitialMessage)

	msg := tgbotapi.NewMessage(s.chatID, sb.String())
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("send conversation message: %w", err)
	}

	s.logger.Info().
		Str("shop_id", conv.ShopID).
		Int("participants", len(conv.Participants)).
		Msg("conversation created")
	return nil
}

func participantList(conv Conversation) string {
	names := make([]string, 0, len(conv.Participants))
	for _, id := range conv.Participants {
		if name, ok := conv.ParticipantNames[id]; ok && name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
