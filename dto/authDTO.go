package dto

type SigninRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type ResetPasswordRequest struct {
	Identifier  string `json:"identifier" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}
