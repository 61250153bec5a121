package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleFinance = "finance"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess   = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess    = "❌ Hanya staf sekolah yang boleh mengakses fitur %s."
	ErrOnlyFinanceCanAccess  = "❌ Hanya admin atau finance yang boleh mengakses fitur %s."
	ErrOnlyTeachersCanAccess = "❌ Hanya teacher atau admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorFinance(feature string) string {
	return fmt.Sprintf(ErrOnlyFinanceCanAccess, feature)
}

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTeacher,
		RoleFinance,
	}

	TeacherAndAbove = []string{
		RoleTeacher,
		RoleAdmin,
	}

	FinanceAndAbove = []string{
		RoleFinance,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
