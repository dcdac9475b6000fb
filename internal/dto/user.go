package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	PhoneNumber   string  `json:"phone_number"`
	Role          string  `json:"role"`
	ProfileImage  *string `json:"profile_image,omitempty"`
	ShiftID       *uint   `json:"shift_id,omitempty"`
	DateOfJoining string  `json:"date_of_joining,omitempty"` // "2006-01-02"
}

// UpdateProfileRequest 更新个人资料请求（multipart/form-data，图片另行处理）
type UpdateProfileRequest struct {
	Name        *string `form:"name"         binding:"omitempty,min=2,max=100"`
	Username    *string `form:"username"     binding:"omitempty,min=3,max=50"`
	Email       *string `form:"email"        binding:"omitempty,email"`
	PhoneNumber *string `form:"phone_number" binding:"omitempty,min=7,max=20"`
}

// UpdateProfileResponse 更新个人资料响应
type UpdateProfileResponse struct {
	ProfileImage *string `json:"profile_image,omitempty"`
}
