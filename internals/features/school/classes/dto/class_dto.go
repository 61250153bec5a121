package dto

type CreateClassRequest struct {
	Name        string `json:"name"         validate:"required,min=2,max=120"`
	Grade       string `json:"grade"        validate:"required,max=20"`
	TeacherName string `json:"teacher_name" validate:"required,max=120"`
}

type UpdateClassRequest struct {
	Name        *string `json:"name,omitempty"         validate:"omitempty,min=2,max=120"`
	Grade       *string `json:"grade,omitempty"        validate:"omitempty,max=20"`
	TeacherName *string `json:"teacher_name,omitempty" validate:"omitempty,max=120"`
}

// ReplaceAssignmentsRequest mengganti seluruh mapping guru satu kelas
type ReplaceAssignmentsRequest struct {
	ClassID string   `json:"class_id" validate:"required,uuid"`
	UserIDs []string `json:"user_ids" validate:"dive,uuid"`
}

// BatchAssignRequest menetapkan satu guru ke banyak kelas sekaligus
type BatchAssignRequest struct {
	UserID   string   `json:"user_id"   validate:"required,uuid"`
	ClassIDs []string `json:"class_ids" validate:"required,min=1,dive,uuid"`
}
