package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"powerschool_backend/internals/constants"
	activityController "powerschool_backend/internals/features/activity/controller"
	feeController "powerschool_backend/internals/features/finance/fees/controller"
	dashboardController "powerschool_backend/internals/features/home/dashboard/controller"
	attendanceController "powerschool_backend/internals/features/school/attendance/controller"
	classController "powerschool_backend/internals/features/school/classes/controller"
	examController "powerschool_backend/internals/features/school/exams/controller"
	gradeController "powerschool_backend/internals/features/school/grades/controller"
	homeworkController "powerschool_backend/internals/features/school/homework/controller"
	importController "powerschool_backend/internals/features/school/imports/controller"
	studentController "powerschool_backend/internals/features/school/students/controller"
	subjectController "powerschool_backend/internals/features/school/subjects/controller"
	timetableController "powerschool_backend/internals/features/school/timetable/controller"
	authController "powerschool_backend/internals/features/users/auth/controller"
	userController "powerschool_backend/internals/features/users/user/controller"
	"powerschool_backend/internals/middlewares"
	authMiddleware "powerschool_backend/internals/middlewares/auth"
)

// SetupRoutes mendaftarkan semua endpoint.
// Webhook pembayaran sengaja di luar AuthMiddleware (Midtrans tidak
// membawa token kita); path-nya juga masuk skip-list middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authCtrl := authController.NewAuthController(db)
	adminUserCtrl := userController.NewAdminUserController(db)
	profileCtrl := userController.NewProfileController(db)
	classCtrl := classController.NewClassController(db)
	studentCtrl := studentController.NewStudentController(db)
	subjectCtrl := subjectController.NewSubjectController(db)
	attendanceCtrl := attendanceController.NewAttendanceController(db)
	timetableCtrl := timetableController.NewTimetableController(db)
	gradeCtrl := gradeController.NewGradeController(db)
	examCtrl := examController.NewExamController(db)
	homeworkCtrl := homeworkController.NewHomeworkController(db)
	feeCtrl := feeController.NewFeeController(db)
	dashboardCtrl := dashboardController.NewDashboardController(db)
	activityCtrl := activityController.NewActivityController(db)
	importCtrl := importController.NewImportController(db)

	api := app.Group("/api")

	// ---------- Public ----------
	authGroup := api.Group("/auth", middlewares.AuthRateLimiter())
	authGroup.Post("/register", authCtrl.Register)
	authGroup.Post("/login", authCtrl.Login)
	authGroup.Post("/login-google", authCtrl.LoginGoogle)

	api.Post("/payments/notification", feeCtrl.PaymentNotification)

	// ---------- Authenticated ----------
	api.Use(authMiddleware.AuthMiddleware(db))

	api.Post("/auth/logout", authCtrl.Logout)
	api.Get("/auth/me", authCtrl.Me)

	// Dashboard: semua role
	api.Get("/dashboard", dashboardCtrl.Get)

	// Absensi: teacher + admin
	attendanceGroup := api.Group("/attendance",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTeacher("absensi"), constants.TeacherAndAbove))
	attendanceGroup.Get("/roster", attendanceCtrl.Roster)
	attendanceGroup.Post("/", attendanceCtrl.Save)
	attendanceGroup.Post("/lock", attendanceCtrl.ToggleLock)

	// Jadwal: teacher + admin
	timetableGroup := api.Group("/timetable",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTeacher("jadwal"), constants.TeacherAndAbove))
	timetableGroup.Get("/", timetableCtrl.List)
	timetableGroup.Post("/", timetableCtrl.Create)
	timetableGroup.Delete("/:id", timetableCtrl.Delete)

	// Nilai: teacher + admin
	gradeGroup := api.Group("/grades",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTeacher("nilai"), constants.TeacherAndAbove))
	gradeGroup.Get("/", gradeCtrl.List)
	gradeGroup.Post("/", gradeCtrl.Save)
	gradeGroup.Get("/export", gradeCtrl.ExportCSV)

	// Ujian: teacher + admin
	examGroup := api.Group("/exams",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTeacher("ujian"), constants.TeacherAndAbove))
	examGroup.Get("/", examCtrl.List)
	examGroup.Post("/", examCtrl.Create)
	examGroup.Delete("/:id", examCtrl.Delete)
	examGroup.Post("/scores", examCtrl.SaveScores)
	examGroup.Get("/:id/rank", examCtrl.Rank)
	examGroup.Get("/:id/export", examCtrl.ExportCSV)

	// Tugas: teacher + admin
	homeworkGroup := api.Group("/homework",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTeacher("tugas"), constants.TeacherAndAbove))
	homeworkGroup.Get("/", homeworkCtrl.List)
	homeworkGroup.Post("/", homeworkCtrl.Create)
	homeworkGroup.Delete("/:id", homeworkCtrl.Delete)
	homeworkGroup.Get("/:id/submissions", homeworkCtrl.ListSubmissions)
	homeworkGroup.Post("/submissions", homeworkCtrl.SaveSubmission)

	// Keuangan: finance + admin
	feeGroup := api.Group("/fees",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorFinance("keuangan"), constants.FinanceAndAbove))
	feeGroup.Get("/", feeCtrl.List)
	feeGroup.Post("/", feeCtrl.Create)
	feeGroup.Post("/:id/mark-paid", feeCtrl.MarkPaid)
	feeGroup.Get("/:id/receipt", feeCtrl.Receipt)
	feeGroup.Post("/:id/checkout", feeCtrl.Checkout)

	api.Post("/receipt/send",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorFinance("kwitansi"), constants.FinanceAndAbove),
		feeCtrl.SendReceipt)

	// ---------- Admin only ----------
	adminOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("administrasi"), constants.AdminOnly)

	classGroup := api.Group("/classes", adminOnly)
	classGroup.Get("/", classCtrl.List)
	classGroup.Post("/", classCtrl.Create)
	classGroup.Patch("/:id", classCtrl.Update)
	classGroup.Delete("/:id", classCtrl.Delete)
	classGroup.Get("/assignments", classCtrl.ListAssignments)
	classGroup.Put("/assignments", classCtrl.ReplaceAssignments)
	classGroup.Put("/assignments/by-teacher", classCtrl.BatchAssignTeacher)

	studentGroup := api.Group("/students", adminOnly)
	studentGroup.Get("/", studentCtrl.List)
	studentGroup.Get("/:id", studentCtrl.Detail)
	studentGroup.Post("/", studentCtrl.Create)
	studentGroup.Patch("/:id", studentCtrl.Update)
	studentGroup.Delete("/:id", studentCtrl.Delete)

	subjectGroup := api.Group("/subjects", adminOnly)
	subjectGroup.Get("/", subjectCtrl.List)
	subjectGroup.Post("/", subjectCtrl.Create)
	subjectGroup.Delete("/:id", subjectCtrl.Delete)

	// Staf & akun. Controller create/delete mengecek role lagi sebelum eksekusi.
	adminUsers := api.Group("/admin/users", adminOnly)
	adminUsers.Get("/", profileCtrl.List)
	adminUsers.Post("/", adminUserCtrl.Create)
	adminUsers.Delete("/", adminUserCtrl.Delete)
	adminUsers.Patch("/:id", profileCtrl.Update)
	adminUsers.Post("/attendance", profileCtrl.MarkStaffAttendance)
	adminUsers.Post("/:id/documents", profileCtrl.UploadDocument)

	// Kunci absensi
	api.Get("/admin/locks", adminOnly, attendanceCtrl.ListLocks)
	api.Delete("/admin/locks", adminOnly, attendanceCtrl.ForceUnlock)

	// Audit
	api.Get("/admin/activity", adminOnly, activityCtrl.List)

	// Import / export CSV
	importGroup := api.Group("/admin/import", adminOnly)
	importGroup.Post("/classes", importCtrl.ImportClasses)
	importGroup.Post("/students", importCtrl.ImportStudents)

	exportGroup := api.Group("/admin/export", adminOnly)
	exportGroup.Get("/students", importCtrl.ExportStudents)
	exportGroup.Get("/attendance", importCtrl.ExportAttendance)
	exportGroup.Get("/invoices", importCtrl.ExportInvoices)
}
