package response_models

type AdminUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    AdminUser `json:"user"`
}

type LifecycleResult struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
