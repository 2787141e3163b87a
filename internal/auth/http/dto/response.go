// Package dto provides data transfer objects for the auth HTTP layer.
package dto

import (
	"time"

	authUseCase "github.com/allisson/familyvault/internal/auth/usecase"
	userDto "github.com/allisson/familyvault/internal/user/http/dto"
)

// LoginResponse represents the API response for a successful login
type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresAt   time.Time            `json:"expires_at"`
	User        userDto.UserResponse `json:"user"`
}

// ToLoginResponse converts a login use case output to a LoginResponse DTO
func ToLoginResponse(output *authUseCase.LoginOutput) LoginResponse {
	return LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		ExpiresAt:   output.ExpiresAt,
		User:        userDto.ToUserResponse(output.User),
	}
}
