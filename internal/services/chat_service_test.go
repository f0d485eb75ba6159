package services_test

import (
	"testing"

	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/services"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newChatService(db *gorm.DB, publisher services.EventPublisher) (services.ChatService, services.NotificationService) {
	userRepo := repositories.NewUserRepository(db)
	notificationService := services.NewNotificationService(repositories.NewNotificationRepository(db), userRepo)
	chatService := services.NewChatService(
		repositories.NewMessageRepository(db),
		userRepo,
		notificationService,
		publisher,
	)
	return chatService, notificationService
}

func TestChatService_Send(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	publisher := &fakePublisher{}
	svc, notifications := newChatService(db, publisher)

	alice := createUser(t, db, "Alice", models.UserRoleTourist)
	bob := createUser(t, db, "Bob", models.UserRoleGuide)

	message, err := svc.Send(alice.ID, &dto.SendMessageRequest{
		ReceiverID: bob.ID,
		Text:       "Is the tour still on for Saturday?",
	})
	require.NoError(t, err)

	assert.Equal(t, alice.ID, message.SenderID)
	assert.Equal(t, bob.ID, message.ReceiverID)
	assert.False(t, message.IsRead)
	assert.False(t, message.DeliveredAt.IsZero(), "delivered means persisted")

	// Receiver got a notification and a live event on the shared channel.
	count, err := notifications.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "private-chat-"+models.ConversationKey(alice.ID, bob.ID), events[0].Channel)
	assert.Equal(t, "message:new", events[0].Event)
}

func TestChatService_Send_Rejections(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newChatService(db, &fakePublisher{})

	alice := createUser(t, db, "Alice", models.UserRoleTourist)
	bob := createUser(t, db, "Bob", models.UserRoleGuide)

	_, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverID: alice.ID, Text: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrSelfMessage)

	_, err = svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverID: bob.ID, Text: "   "})
	assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)

	_, err = svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverID: "00000000-0000-0000-0000-000000000000", Text: "hi"})
	require.Error(t, err, "receiver must exist")
}

func TestChatService_GetConversation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newChatService(db, &fakePublisher{})

	alice := createUser(t, db, "Alice", models.UserRoleTourist)
	bob := createUser(t, db, "Bob", models.UserRoleGuide)
	eve := createUser(t, db, "Eve", models.UserRoleTourist)

	texts := []string{"first", "second", "third"}
	for i, text := range texts {
		sender, receiver := alice.ID, bob.ID
		if i%2 == 1 {
			sender, receiver = bob.ID, alice.ID
		}
		_, err := svc.Send(sender, &dto.SendMessageRequest{ReceiverID: receiver, Text: text})
		require.NoError(t, err)
	}

	messages, err := svc.GetConversation(alice.ID, alice.ID, bob.ID, nil)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i, text := range texts {
		assert.Equal(t, text, messages[i].Text, "oldest first")
	}

	// Same thread from the other side.
	messages, err = svc.GetConversation(bob.ID, bob.ID, alice.ID, nil)
	require.NoError(t, err)
	assert.Len(t, messages, 3)

	_, err = svc.GetConversation(eve.ID, alice.ID, bob.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant, "outsiders cannot read the thread")
}

func TestChatService_GetUserConversations(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newChatService(db, &fakePublisher{})

	tourist := createUser(t, db, "Tourist", models.UserRoleTourist)
	guideOne := createUser(t, db, "GuideOne", models.UserRoleGuide)
	guideTwo := createUser(t, db, "GuideTwo", models.UserRoleGuide)

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Send(tourist.ID, &dto.SendMessageRequest{ReceiverID: guideOne.ID, Text: text})
		require.NoError(t, err)
	}
	_, err := svc.Send(guideOne.ID, &dto.SendMessageRequest{ReceiverID: tourist.ID, Text: "reply"})
	require.NoError(t, err)
	_, err = svc.Send(guideTwo.ID, &dto.SendMessageRequest{ReceiverID: tourist.ID, Text: "hello there"})
	require.NoError(t, err)

	summaries, err := svc.GetUserConversations(tourist.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2, "one row per peer")

	byPeer := make(map[string]*dto.ConversationSummaryResponse, len(summaries))
	for _, s := range summaries {
		byPeer[s.PeerID] = s
	}

	one := byPeer[guideOne.ID]
	require.NotNil(t, one)
	assert.Equal(t, "reply", one.LastMessageText)
	assert.Equal(t, guideOne.ID, one.LastSenderID)
	assert.Equal(t, "GuideOne", one.PeerName)
	assert.Equal(t, int64(1), one.UnreadCount, "only inbound unread messages count")

	two := byPeer[guideTwo.ID]
	require.NotNil(t, two)
	assert.Equal(t, "hello there", two.LastMessageText)
	assert.Equal(t, int64(1), two.UnreadCount)

	// The guide's own inbox sees the three unanswered messages.
	guideView, err := svc.GetUserConversations(guideOne.ID)
	require.NoError(t, err)
	require.Len(t, guideView, 1)
	assert.Equal(t, int64(3), guideView[0].UnreadCount)
}

func TestChatService_MarkRead(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newChatService(db, &fakePublisher{})

	alice := createUser(t, db, "Alice", models.UserRoleTourist)
	bob := createUser(t, db, "Bob", models.UserRoleGuide)

	message, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverID: bob.ID, Text: "ping"})
	require.NoError(t, err)

	// The sender cannot acknowledge their own message.
	_, err = svc.MarkRead(alice.ID, message.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)

	read, err := svc.MarkRead(bob.ID, message.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)
	firstReadAt := *read.ReadAt

	// A second acknowledgement keeps the original timestamp.
	again, err := svc.MarkRead(bob.ID, message.ID)
	require.NoError(t, err)
	require.NotNil(t, again.ReadAt)
	assert.Equal(t, firstReadAt.Unix(), again.ReadAt.Unix())
}

func TestChatService_MarkConversationRead(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newChatService(db, &fakePublisher{})

	alice := createUser(t, db, "Alice", models.UserRoleTourist)
	bob := createUser(t, db, "Bob", models.UserRoleGuide)

	for _, text := range []string{"one", "two"} {
		_, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverID: bob.ID, Text: text})
		require.NoError(t, err)
	}

	count, err := svc.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	updated, err := svc.MarkConversationRead(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	count, err = svc.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Idempotent: nothing left to update.
	updated, err = svc.MarkConversationRead(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}
