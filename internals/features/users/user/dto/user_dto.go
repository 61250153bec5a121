package dto

/* ==========================
   Admin user management
========================== */

type CreateStaffRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=admin teacher finance"`
	Designation *string `json:"designation,omitempty"`
	Department  *string `json:"department,omitempty"`
	SalaryCents *int64  `json:"salary_cents,omitempty"`
}

type StaffAttendanceRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Status string `json:"status"  validate:"required,oneof=present absent leave"`
}

/* ==========================
   Responses
========================== */

type StaffRow struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	FullName    *string `json:"full_name"`
	Role        string  `json:"role"`
	Designation *string `json:"designation,omitempty"`
	Department  *string `json:"department,omitempty"`
	SalaryCents *int64  `json:"salary_cents,omitempty"`
	StaffDocURL *string `json:"staff_doc_url,omitempty"`
	ResumeURL   *string `json:"resume_url,omitempty"`
	IsActive    bool    `json:"is_active"`
	TodayStatus *string `json:"today_status,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
