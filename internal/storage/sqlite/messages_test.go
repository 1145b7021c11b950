package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franvarela/lorobot/internal/core"
)

func TestMessagesInsertAndLatestByChat(t *testing.T) {
	ctx := context.Background()
	repo := NewMessagesRepo(newTestDB(t))

	id1, err := repo.Insert(ctx, core.StoredMessage{
		Sender:     "user-1",
		ChatID:     "chat-a",
		Text:       "¿Cuál es el precio?",
		Timestamp:  time.Now().UTC(),
		IsQuestion: true,
		Processed:  true,
	})
	require.NoError(t, err)

	id2, err := repo.Insert(ctx, core.StoredMessage{
		Sender:           "user-2",
		ChatID:           "chat-a",
		Text:             "Cuesta 100 pesos",
		Timestamp:        time.Now().UTC(),
		IsAnswer:         true,
		LinkedQuestionID: &id1,
		Processed:        true,
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1, "ids are monotonic")

	latest, err := repo.LatestByChat(ctx, "chat-a")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, id2, latest.ID)
	assert.Equal(t, "Cuesta 100 pesos", latest.Text)
	assert.True(t, latest.IsAnswer)
	require.NotNil(t, latest.LinkedQuestionID)
	assert.Equal(t, id1, *latest.LinkedQuestionID)
	assert.True(t, latest.Processed)
}

func TestMessagesLatestByChatEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewMessagesRepo(newTestDB(t))

	latest, err := repo.LatestByChat(ctx, "chat-missing")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestMessagesLatestByChatIsolatesChats(t *testing.T) {
	ctx := context.Background()
	repo := NewMessagesRepo(newTestDB(t))

	_, err := repo.Insert(ctx, core.StoredMessage{
		Sender: "user-1", ChatID: "chat-a", Text: "para a",
		Timestamp: time.Now().UTC(), Processed: true,
	})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, core.StoredMessage{
		Sender: "user-2", ChatID: "chat-b", Text: "para b",
		Timestamp: time.Now().UTC(), Processed: true,
	})
	require.NoError(t, err)

	latest, err := repo.LatestByChat(ctx, "chat-a")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "para a", latest.Text)
}

func TestMessagesListRecentAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewMessagesRepo(newTestDB(t))

	for _, text := range []string{"uno", "dos", "tres"} {
		_, err := repo.Insert(ctx, core.StoredMessage{
			Sender: "user-1", ChatID: "chat-a", Text: text,
			Timestamp: time.Now().UTC(), Processed: true,
		})
		require.NoError(t, err)
	}

	msgs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "tres", msgs[0].Text)
	assert.Equal(t, "dos", msgs[1].Text)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
