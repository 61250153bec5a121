package database

import (
	"log"

	activityModel "powerschool_backend/internals/features/activity/model"
	feeModel "powerschool_backend/internals/features/finance/fees/model"
	attendanceModel "powerschool_backend/internals/features/school/attendance/model"
	classModel "powerschool_backend/internals/features/school/classes/model"
	examModel "powerschool_backend/internals/features/school/exams/model"
	gradeModel "powerschool_backend/internals/features/school/grades/model"
	homeworkModel "powerschool_backend/internals/features/school/homework/model"
	studentModel "powerschool_backend/internals/features/school/students/model"
	subjectModel "powerschool_backend/internals/features/school/subjects/model"
	timetableModel "powerschool_backend/internals/features/school/timetable/model"
	authModel "powerschool_backend/internals/features/users/auth/model"
	userModel "powerschool_backend/internals/features/users/user/model"
)

// AutoMigrate semua tabel. Dipanggil sekali saat startup; idempotent.
func AutoMigrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&userModel.ProfileModel{},
		&userModel.StaffAttendanceModel{},
		&authModel.TokenBlacklist{},
		&classModel.ClassModel{},
		&classModel.TeacherClassModel{},
		&studentModel.StudentModel{},
		&subjectModel.SubjectModel{},
		&attendanceModel.AttendanceRecordModel{},
		&attendanceModel.AttendanceLockModel{},
		&timetableModel.TimetableEntryModel{},
		&gradeModel.GradeModel{},
		&examModel.ExamModel{},
		&examModel.ExamScoreModel{},
		&homeworkModel.HomeworkModel{},
		&homeworkModel.HomeworkSubmissionModel{},
		&feeModel.FeeInvoiceModel{},
		&feeModel.PaymentModel{},
		&activityModel.ActivityLogModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ Migrasi selesai.")
}
