package dto

import (
	"time"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// CreateClientRequest defines the payload for creating a client.
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=120"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,max=32"`
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// ClientResponse defines the client data returned to clients of the API.
type ClientResponse struct {
	ClientID  string    `json:"clientID"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:  c.ClientID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

// ListClientsResponse wraps a page of clients.
type ListClientsResponse struct {
	Clients    []ClientResponse `json:"clients"`
	Pagination PaginationMeta   `json:"pagination"`
}

// ToListClientsResponse converts domain clients plus paging info to the DTO
func ToListClientsResponse(clients []domain.Client, meta PaginationMeta) ListClientsResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return ListClientsResponse{Clients: responses, Pagination: meta}
}
