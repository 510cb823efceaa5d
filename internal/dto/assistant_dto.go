package dto

// ChatRequest defines the payload for an assistant conversation turn.
type ChatRequest struct {
	Message string `json:"message" binding:"required,min=1,max=4000"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
