package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"tourbay_backend/internal/models"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"
)

const chatChannelPrefix = "private-chat-"

// RealtimeService authorizes clients onto private per-conversation
// channels. A grant is an HMAC over socket id and channel name, so the
// websocket hub can verify a subscription without a database hit.
type RealtimeService interface {
	ChannelName(userA, userB string) string
	AuthorizeSubscription(requesterID string, req *dto.RealtimeAuthRequest) (*dto.RealtimeAuthResponse, error)
	ValidateGrant(socketID, channelName, grant string) bool
}

type realtimeService struct {
	secret []byte
}

func NewRealtimeService(secret string) RealtimeService {
	return &realtimeService{secret: []byte(secret)}
}

// ChannelName derives the channel from the conversation key, so both
// participants land on the same channel no matter who connects first.
func (s *realtimeService) ChannelName(userA, userB string) string {
	return chatChannelPrefix + models.ConversationKey(userA, userB)
}

// ParseChatChannel extracts the two participant ids from a channel name.
func ParseChatChannel(channelName string) (string, string, bool) {
	if !strings.HasPrefix(channelName, chatChannelPrefix) {
		return "", "", false
	}
	key := strings.TrimPrefix(channelName, chatChannelPrefix)
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (s *realtimeService) AuthorizeSubscription(requesterID string, req *dto.RealtimeAuthRequest) (*dto.RealtimeAuthResponse, error) {
	userA, userB, ok := ParseChatChannel(req.ChannelName)
	if !ok {
		return nil, apperrors.NewBadRequestError("Unknown channel name format")
	}
	if requesterID != userA && requesterID != userB {
		return nil, apperrors.ErrNotParticipant
	}

	return &dto.RealtimeAuthResponse{
		Auth: s.sign(req.SocketID, req.ChannelName),
	}, nil
}

// ValidateGrant checks a grant presented on subscribe. Constant-time
// comparison, same as the signer.
func (s *realtimeService) ValidateGrant(socketID, channelName, grant string) bool {
	expected := s.sign(socketID, channelName)
	return hmac.Equal([]byte(expected), []byte(grant))
}

func (s *realtimeService) sign(socketID, channelName string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(socketID + ":" + channelName))
	return hex.EncodeToString(mac.Sum(nil))
}
