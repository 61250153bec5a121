package dto

type AttendanceEntry struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	Status    string  `json:"status"     validate:"required,oneof=present absent tardy excused"`
	Note      *string `json:"note"`
}

type SaveAttendanceRequest struct {
	ClassID        string            `json:"class_id"        validate:"required,uuid"`
	AttendanceDate string            `json:"attendance_date" validate:"required,datetime=2006-01-02"`
	Entries        []AttendanceEntry `json:"entries"         validate:"required,min=1,dive"`
}

type ToggleLockRequest struct {
	ClassID        string `json:"class_id"        validate:"required,uuid"`
	AttendanceDate string `json:"attendance_date" validate:"required,datetime=2006-01-02"`
	Locked         bool   `json:"locked"`
}

// RosterRow: satu siswa + status absensi hari itu (default present jika belum tercatat)
type RosterRow struct {
	StudentID string  `json:"student_id"`
	FullName  string  `json:"full_name"`
	Status    string  `json:"status"`
	Note      *string `json:"note"`
}

type RosterResponse struct {
	ClassID        string      `json:"class_id"`
	AttendanceDate string      `json:"attendance_date"`
	Locked         bool        `json:"locked"`
	Rows           []RosterRow `json:"rows"`
}
