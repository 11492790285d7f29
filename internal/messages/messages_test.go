package messages_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"organizer-bot/internal/messages"
)

func TestCatalogLoads(t *testing.T) {
	msgs, err := messages.New(zap.NewNop().Sugar())
	require.NoError(t, err)

	for _, id := range []string{"welcome", "help", "menu", "invalid_format", "error_occurred", "other_messages"} {
		assert.NotEqual(t, id, msgs.Get(id), "catalog is missing %q", id)
	}
}

func TestWelcomeIncludesName(t *testing.T) {
	msgs, err := messages.New(zap.NewNop().Sugar())
	require.NoError(t, err)

	got := msgs.GetData("welcome", map[string]interface{}{"Name": "ivan"})
	assert.Contains(t, got, "ivan")
}

func TestMissingIDFallsBackToID(t *testing.T) {
	msgs, err := messages.New(zap.NewNop().Sugar())
	require.NoError(t, err)

	assert.Equal(t, "no_such_message", msgs.Get("no_such_message"))
}
