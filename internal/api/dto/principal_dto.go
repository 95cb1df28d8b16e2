package dto

import "time"

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BuyerRegisterRequest payload for POST /user.
type BuyerRegisterRequest struct {
	Name            string `json:"name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ShippingAddress string `json:"shipping_address"`
}

// SellerRegisterRequest payload for POST /seller.
type SellerRegisterRequest struct {
	Name             string `json:"name"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Password         string `json:"password"`
	Address          string `json:"address"`
	CorporateAddress string `json:"corporate_address"`
	NID              string `json:"nid"`
}

// ImageResponse carries stored image bytes, base64 encoded by encoding/json.
type ImageResponse struct {
	Data []byte `json:"data"`
	Type string `json:"type"`
}

// PrincipalResponse is the sanitized view of any principal.
type PrincipalResponse struct {
	ID               string         `json:"id"`
	Role             string         `json:"role"`
	Name             string         `json:"name"`
	Username         string         `json:"username"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	ShippingAddress  string         `json:"shipping_address,omitempty"`
	Address          string         `json:"address,omitempty"`
	CorporateAddress string         `json:"corporate_address,omitempty"`
	NID              string         `json:"nid,omitempty"`
	Slug             string         `json:"slug,omitempty"`
	Photo            *ImageResponse `json:"photo,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
