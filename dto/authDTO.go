package dto

type SessionRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type SessionResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
}
