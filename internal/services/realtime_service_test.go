package services_test

import (
	"testing"

	"tourbay_backend/internal/services"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealtimeService_ChannelName(t *testing.T) {
	t.Parallel()

	svc := services.NewRealtimeService("secret")

	// Both participants derive the same channel.
	assert.Equal(t, svc.ChannelName("b", "a"), svc.ChannelName("a", "b"))
	assert.Equal(t, "private-chat-a_b", svc.ChannelName("b", "a"))
}

func TestParseChatChannel(t *testing.T) {
	t.Parallel()

	userA, userB, ok := services.ParseChatChannel("private-chat-a_b")
	require.True(t, ok)
	assert.Equal(t, "a", userA)
	assert.Equal(t, "b", userB)

	for _, name := range []string{"presence-chat-a_b", "private-chat-", "private-chat-a", "private-chat-_b", "private-chat-a_"} {
		_, _, ok := services.ParseChatChannel(name)
		assert.False(t, ok, "name %q must be rejected", name)
	}
}

func TestRealtimeService_AuthorizeSubscription(t *testing.T) {
	t.Parallel()

	svc := services.NewRealtimeService("secret")
	channel := svc.ChannelName("user-a", "user-b")

	grant, err := svc.AuthorizeSubscription("user-a", &dto.RealtimeAuthRequest{
		SocketID:    "socket-1",
		ChannelName: channel,
	})
	require.NoError(t, err)
	require.NotEmpty(t, grant.Auth)

	assert.True(t, svc.ValidateGrant("socket-1", channel, grant.Auth))

	// A grant binds socket and channel together.
	assert.False(t, svc.ValidateGrant("socket-2", channel, grant.Auth))
	assert.False(t, svc.ValidateGrant("socket-1", svc.ChannelName("user-a", "user-c"), grant.Auth))
	assert.False(t, svc.ValidateGrant("socket-1", channel, grant.Auth+"00"))

	// A different secret invalidates everything outstanding.
	rotated := services.NewRealtimeService("other-secret")
	assert.False(t, rotated.ValidateGrant("socket-1", channel, grant.Auth))
}

func TestRealtimeService_AuthorizeSubscription_Rejections(t *testing.T) {
	t.Parallel()

	svc := services.NewRealtimeService("secret")

	_, err := svc.AuthorizeSubscription("outsider", &dto.RealtimeAuthRequest{
		SocketID:    "socket-1",
		ChannelName: svc.ChannelName("user-a", "user-b"),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)

	_, err = svc.AuthorizeSubscription("user-a", &dto.RealtimeAuthRequest{
		SocketID:    "socket-1",
		ChannelName: "not-a-chat-channel",
	})
	require.Error(t, err)
}
