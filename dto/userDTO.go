package dto

type UpdateAppearanceRequest struct {
	Theme   string `json:"theme" binding:"required,oneof=light dark system"`
	Palette string `json:"palette" binding:"required,oneof=blue purple green orange red pink"`
}
