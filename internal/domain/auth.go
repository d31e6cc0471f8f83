package domain

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — ответ эндпоинта логина. Разные версии бэкенда называют поле по-разному.
type LoginResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

// SessionView — состояние сессии для UI.
type SessionView struct {
	State         string     `json:"state"`
	Authenticated bool       `json:"authenticated"`
	Loading       bool       `json:"loading"`
	IsAdmin       bool       `json:"isAdmin"`
	Roles         []string   `json:"roles,omitempty"`
	Subject       string     `json:"subject,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}
