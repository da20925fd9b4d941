package dto

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Dates       []string `json:"dates" binding:"required,min=1"`
	Priority    string   `json:"priority" binding:"required,oneof=low medium high"`
}

type UpdateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Dates       []string `json:"dates" binding:"required,min=1"`
	Priority    string   `json:"priority" binding:"required,oneof=low medium high"`
}
