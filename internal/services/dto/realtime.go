package dto

type RealtimeAuthRequest struct {
	SocketID    string `json:"socket_id" binding:"required"`
	ChannelName string `json:"channel_name" binding:"required"`
}

type RealtimeAuthResponse struct {
	Auth string `json:"auth"`
}
