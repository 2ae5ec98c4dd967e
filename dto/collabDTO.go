package dto

type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type AssistantChatRequest struct {
	Message string `json:"message" binding:"required"`
	Context string `json:"context"`
	Post    bool   `json:"post"`
}
