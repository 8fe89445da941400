package controllers

import (
	"context"

	"cryptofolio/src/schemas"
	"cryptofolio/src/services"
)

type AuthControllerI interface {
	Register(ctx context.Context, req *schemas.RegisterRequest) (*schemas.TokenResponse, error)
	Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.TokenResponse, error)
}

type AuthController struct {
	authService services.AuthServiceI
}

func NewAuthController(authService services.AuthServiceI) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) Register(ctx context.Context, req *schemas.RegisterRequest) (*schemas.TokenResponse, error) {
	user, token, err := c.authService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &schemas.TokenResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (c *AuthController) Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.TokenResponse, error) {
	user, token, err := c.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &schemas.TokenResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
