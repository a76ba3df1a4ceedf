package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dteai/internal/chat"
)

func TestChatRepository_SaveAndRecall(t *testing.T) {
	infra := SetupTestInfraWithOptions(t, false, true, false)
	ctx := context.Background()

	repo := chat.NewRepository(infra.MongoDB)
	require.NoError(t, repo.EnsureIndexes(ctx))

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 6; i++ {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		require.NoError(t, repo.SaveMessage(ctx, chat.Message{
			SessionID: "session-1",
			Role:      role,
			Content:   fmt.Sprintf("mensaje %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.SaveMessage(ctx, chat.Message{
		SessionID: "session-other",
		Role:      chat.RoleUser,
		Content:   "otro hilo",
		Timestamp: base,
	}))

	// last N messages of the session, oldest first
	messages, err := repo.RecentMessages(ctx, "session-1", 4)
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, "mensaje 2", messages[0].Content)
	assert.Equal(t, "mensaje 5", messages[3].Content)

	all, err := repo.RecentMessages(ctx, "session-1", 100)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	empty, err := repo.RecentMessages(ctx, "session-missing", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
