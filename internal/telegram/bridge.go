package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"bookchat/internal/api"
)

// fallbackReply is shown when the recommendation service is unreachable.
const fallbackReply = "Sorry, something went wrong while finding your book. Please try again."

// botAPI abstracts the Telegram bot methods used by the bridge, enabling testing with mocks.
type botAPI interface {
	Start(ctx context.Context)
	GetMe(ctx context.Context) (*models.User, error)
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
}

// Backend is the slice of the recommendation service the bridge needs.
type Backend interface {
	Chat(ctx context.Context, query, lang, sessionID string) (string, error)
	SaveSession(ctx context.Context, id string, messages []api.Message) error
}

// chatSession tracks one Telegram chat's conversation with the service.
type chatSession struct {
	ID       string
	Messages []api.Message
}

// Bridge relays Telegram messages to the recommendation service.
// Each Telegram chat maps to its own service session, so conversations
// started on Telegram show up in the TUI sidebar too.
type Bridge struct {
	bot     botAPI
	backend Backend
	lang    string

	mu       sync.Mutex
	sessions map[int64]*chatSession
}

// NewBridge creates a bridge connected to the real Telegram API.
func NewBridge(token string, backend Backend, lang string) (*Bridge, error) {
	br := newBridge(nil, backend, lang)

	b, err := bot.New(token, bot.WithDefaultHandler(br.handleUpdate))
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	br.bot = b
	return br, nil
}

// newBridge wires a bridge around any botAPI, for tests.
func newBridge(b botAPI, backend Backend, lang string) *Bridge {
	if lang == "" {
		lang = "en"
	}
	return &Bridge{
		bot:      b,
		backend:  backend,
		lang:     lang,
		sessions: make(map[int64]*chatSession),
	}
}

// Run registers commands and polls for updates until ctx is cancelled.
func (br *Bridge) Run(ctx context.Context) error {
	if me, err := br.bot.GetMe(ctx); err == nil {
		log.Info("Telegram bridge started", "bot", me.Username)
	}
	br.registerCommands(ctx)
	br.bot.Start(ctx)
	return nil
}

// session returns the chat's session, creating one on first contact.
func (br *Bridge) session(chatID int64) *chatSession {
	br.mu.Lock()
	defer br.mu.Unlock()
	s, ok := br.sessions[chatID]
	if !ok {
		s = &chatSession{ID: uuid.NewString()}
		br.sessions[chatID] = s
	}
	return s
}

// resetSession discards the chat's session so the next message starts fresh.
func (br *Bridge) resetSession(chatID int64) {
	br.mu.Lock()
	defer br.mu.Unlock()
	delete(br.sessions, chatID)
}

// handleUpdate processes incoming Telegram updates
func (br *Bridge) handleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	switch text {
	case "/start", "/help":
		br.reply(ctx, chatID, "Tell me what you like to read and I'll find your next book. Send /new to start a fresh conversation.")
		return
	case "/new":
		br.resetSession(chatID)
		br.reply(ctx, chatID, "Starting fresh. What would you like to read?")
		return
	}

	br.bot.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})

	sess := br.session(chatID)
	answer, err := br.backend.Chat(ctx, text, br.lang, sess.ID)
	if err != nil {
		log.Error("Chat request failed", "chat", chatID, "err", err)
		answer = fallbackReply
	}

	// Handlers run concurrently, one goroutine per update, so the session
	// transcript is mutated and snapshotted under the lock.
	br.mu.Lock()
	sess.Messages = append(sess.Messages,
		api.Message{Role: api.RoleUser, Content: text},
		api.Message{Role: api.RoleAssistant, Content: answer},
	)
	transcript := make([]api.Message, len(sess.Messages))
	copy(transcript, sess.Messages)
	br.mu.Unlock()

	br.reply(ctx, chatID, answer)

	// Persistence is best effort; the conversation continues either way.
	if err == nil {
		if saveErr := br.backend.SaveSession(ctx, sess.ID, transcript); saveErr != nil {
			log.Warn("Session save failed", "chat", chatID, "err", saveErr)
		}
	}
}

// reply sends a plain text message to a chat.
func (br *Bridge) reply(ctx context.Context, chatID int64, text string) {
	_, err := br.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		log.Error("Failed to send Telegram message", "chat", chatID, "err", err)
	}
}

// registerCommands registers slash commands with Telegram
func (br *Bridge) registerCommands(ctx context.Context) {
	commands := []models.BotCommand{
		{Command: "new", Description: "Start a fresh conversation"},
		{Command: "help", Description: "Show what this bot does"},
	}
	if _, err := br.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands}); err != nil {
		log.Warn("Failed to register commands", "err", err)
	}
}
