package telegram

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/dailymentor/dailymentor/internal/errs"
)

const testToken = "7654321:AAFakeTelegramTokenValue"

func newTestClient() *botClient {
	return &botClient{
		log:    slog.Default(),
		token:  testToken,
		chatID: "-1001234567890",
	}
}

// TestClassifyError tests the mapping of Telegram API failures onto the
// application error taxonomy.
func TestClassifyError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "unauthorized maps to auth",
			err:      errors.New("Unauthorized"),
			wantCode: errs.CodeAuth,
		},
		{
			name:     "chat not found maps to target invalid",
			err:      errors.New("Bad Request: chat not found"),
			wantCode: errs.CodeTargetInvalid,
		},
		{
			name:     "blocked bot maps to target invalid",
			err:      errors.New("Forbidden: bot was blocked by the user"),
			wantCode: errs.CodeTargetInvalid,
		},
		{
			name:     "kicked bot maps to target invalid",
			err:      errors.New("Forbidden: bot was kicked from the supergroup chat"),
			wantCode: errs.CodeTargetInvalid,
		},
		{
			name:     "rate limit maps to unavailable",
			err:      errors.New("Too Many Requests: retry after 31"),
			wantCode: errs.CodeUnavailable,
		},
		{
			name:     "connection failure maps to unavailable",
			err:      errors.New("dial tcp: lookup api.telegram.org: no such host"),
			wantCode: errs.CodeUnavailable,
		},
		{
			name:     "timeout maps to unavailable",
			err:      errors.New("context deadline exceeded"),
			wantCode: errs.CodeUnavailable,
		},
	}

	c := newTestClient()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			classified := c.classifyError(tc.err)
			if got := errs.Code(classified); got != tc.wantCode {
				t.Errorf("expected code %q, got %q (%v)", tc.wantCode, got, classified)
			}
		})
	}
}

// TestClassifyErrorRedactsToken verifies the bot token can never leak
// through a classified error, even when the transport error embeds the
// request URL.
func TestClassifyErrorRedactsToken(t *testing.T) {
	t.Parallel()

	c := newTestClient()
	raw := errors.New(`Post "https://api.telegram.org/bot` + testToken + `/sendMessage": dial tcp: connection refused`)

	classified := c.classifyError(raw)
	if strings.Contains(classified.Error(), testToken) {
		t.Errorf("classified error leaks the bot token: %v", classified)
	}
	if !strings.Contains(classified.Error(), "***") {
		t.Errorf("expected the token to be replaced with a redaction marker: %v", classified)
	}
}

func TestRedact(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		token    string
		expected string
	}{
		{
			name:     "token in URL",
			input:    "https://api.telegram.org/bot" + testToken + "/sendMessage",
			token:    testToken,
			expected: "https://api.telegram.org/bot***/sendMessage",
		},
		{
			name:     "token absent",
			input:    "chat not found",
			token:    testToken,
			expected: "chat not found",
		},
		{
			name:     "multiple occurrences",
			input:    testToken + " and " + testToken,
			token:    testToken,
			expected: "*** and ***",
		},
		{
			name:     "empty token leaves input unchanged",
			input:    "anything",
			token:    "",
			expected: "anything",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := redact(tc.input, tc.token); got != tc.expected {
				t.Errorf("redact(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNewClientRejectsMissingConfiguration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		token  string
		chatID string
	}{
		{name: "missing token", token: "", chatID: "12345"},
		{name: "missing chat ID", token: testToken, chatID: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewClient(tc.token, tc.chatID, slog.Default())
			if err == nil {
				t.Fatal("expected a configuration error")
			}
			if errs.Code(err) != errs.CodeConfig {
				t.Errorf("expected code %q, got %q", errs.CodeConfig, errs.Code(err))
			}
		})
	}
}
