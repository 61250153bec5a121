package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"powerschool_backend/internals/constants"
	"powerschool_backend/internals/databases/testdb"
	feeModel "powerschool_backend/internals/features/finance/fees/model"
	attendanceModel "powerschool_backend/internals/features/school/attendance/model"
	classModel "powerschool_backend/internals/features/school/classes/model"
	studentModel "powerschool_backend/internals/features/school/students/model"
)

func TestAttendanceRate(t *testing.T) {
	assert.Equal(t, 0, AttendanceRate(0, 0))
	assert.Equal(t, 100, AttendanceRate(10, 10))
	assert.Equal(t, 50, AttendanceRate(1, 2))
	// 2/3 = 66.67 → 67
	assert.Equal(t, 67, AttendanceRate(2, 3))
	// 1/3 = 33.33 → 33
	assert.Equal(t, 33, AttendanceRate(1, 3))
}

func TestDemoDashboard(t *testing.T) {
	d := DemoDashboard()

	assert.True(t, d.Demo)
	assert.Equal(t, int64(3), d.ClassCount)
	assert.Equal(t, int64(6), d.StudentCount)
	// 6 siswa × 6 hari, absen saat (i+d)%7==0: (0,0),(2,5),(3,4),(4,3),(5,2)
	assert.Equal(t, int64(36), d.AttendanceTotal)
	assert.Equal(t, int64(31), d.PresentCount)
	assert.Equal(t, 86, d.AttendanceRate)
	// 180000 + 120000 + 45000 belum terbayar
	assert.Equal(t, int64(345000), d.OutstandingCents)
	assert.Equal(t, int64(1), d.OverdueCount)
	assert.Equal(t, int64(95000), d.PaidThisMonthCents)
	assert.Equal(t, int64(2), d.InvoiceStatusCounts["pending"])
	assert.Equal(t, int64(1), d.InvoiceStatusCounts["paid"])
	assert.Equal(t, int64(1), d.InvoiceStatusCounts["overdue"])

	// 5 siswa punya absen masing-masing 1; top-3 urut stabil
	require.Len(t, d.TopAbsent, 3)
	assert.Equal(t, "Aisha Rahman", d.TopAbsent[0].FullName)
	assert.Equal(t, int64(1), d.TopAbsent[0].Absences)

	// 3 invoice belum terbayar, urut due date naik: overdue paling dulu
	require.Len(t, d.UpcomingUnpaid, 3)
	assert.Equal(t, "Uang Kegiatan", d.UpcomingUnpaid[0].Title)
	assert.Equal(t, "SPP September", d.UpcomingUnpaid[1].Title)
	assert.Equal(t, "Uang Buku", d.UpcomingUnpaid[2].Title)
}

func dateAgo(days int) string {
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}

// seedSchool: 3 kelas, 2 siswa per kelas, absensi 7 hari terakhir.
// Siswa pertama kelas pertama absen di 5 hari pertama, sisanya hadir.
func seedSchool(t *testing.T, db *gorm.DB) (teacherID uuid.UUID, studentIDs []uuid.UUID) {
	t.Helper()

	teacherID = uuid.New()
	var classIDs []uuid.UUID
	for i := 0; i < 3; i++ {
		class := classModel.ClassModel{
			ID:          uuid.New(),
			Name:        fmt.Sprintf("Kelas %d", i+1),
			Grade:       fmt.Sprintf("%d", i+1),
			TeacherName: "Bu Sari",
		}
		require.NoError(t, db.Create(&class).Error)
		classIDs = append(classIDs, class.ID)
	}
	require.NoError(t, db.Create(&classModel.TeacherClassModel{
		UserID:  teacherID,
		ClassID: classIDs[0],
	}).Error)

	studentIdx := 0
	for _, classID := range classIDs {
		for s := 0; s < 2; s++ {
			student := studentModel.StudentModel{
				ID:       uuid.New(),
				FullName: fmt.Sprintf("Siswa %d", studentIdx+1),
				ClassID:  classID,
			}
			require.NoError(t, db.Create(&student).Error)
			studentIDs = append(studentIDs, student.ID)

			for day := 0; day < 7; day++ {
				status := "present"
				if studentIdx == 0 && day < 5 {
					status = "absent"
				}
				require.NoError(t, db.Create(&attendanceModel.AttendanceRecordModel{
					ID:             uuid.New(),
					StudentID:      student.ID,
					ClassID:        classID,
					AttendanceDate: dateAgo(day),
					Status:         status,
				}).Error)
			}
			studentIdx++
		}
	}
	return teacherID, studentIDs
}

// seedInvoices: dua invoice milik siswa kelas pertama, tiga milik siswa
// kelas ketiga, due date beragam untuk cek urutan. Invoice paid yang
// terbit 40 hari lalu ada untuk memastikan jendela 30 hari dihormati.
func seedInvoices(t *testing.T, db *gorm.DB, class1Student, class3Student uuid.UUID) {
	t.Helper()
	for _, inv := range []struct {
		student   uuid.UUID
		title     string
		amount    int64
		status    string
		issuedAgo int
		dueAgo    int
	}{
		{class1Student, "SPP September", 180000, "pending", 1, -7},
		{class1Student, "SPP Agustus", 95000, "paid", 10, 10},
		{class3Student, "Uang Kegiatan", 120000, "overdue", 20, 5},
		{class3Student, "Uang Buku", 45000, "pending", 3, -14},
		{class3Student, "SPP Juli", 70000, "paid", 40, 40},
	} {
		require.NoError(t, db.Create(&feeModel.FeeInvoiceModel{
			ID:          uuid.New(),
			StudentID:   inv.student,
			Title:       inv.title,
			AmountCents: inv.amount,
			IssuedOn:    dateAgo(inv.issuedAgo),
			DueDate:     dateAgo(inv.dueAgo),
			Status:      inv.status,
		}).Error)
	}
}

func TestLoadDashboardDataAdmin(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)

	_, studentIDs := seedSchool(t, db)
	seedInvoices(t, db, studentIDs[0], studentIDs[4])

	data := LoadDashboardData(db, uuid.New(), constants.RoleAdmin)

	assert.False(t, data.Demo)
	assert.Equal(t, int64(3), data.ClassCount)
	assert.Equal(t, int64(6), data.StudentCount)
	// 42 record, 5 absen → 37 hadir → round(88.09) = 88
	assert.Equal(t, int64(42), data.AttendanceTotal)
	assert.Equal(t, int64(37), data.PresentCount)
	assert.Equal(t, 88, data.AttendanceRate)

	assert.Equal(t, int64(345000), data.OutstandingCents)
	assert.Equal(t, int64(1), data.OverdueCount)
	// SPP Juli terbit 40 hari lalu, di luar jendela 30 hari
	assert.Equal(t, int64(95000), data.PaidThisMonthCents)
	assert.Equal(t, int64(2), data.InvoiceStatusCounts["pending"])
	assert.Equal(t, int64(2), data.InvoiceStatusCounts["paid"])

	// Hanya siswa pertama yang punya absen
	require.Len(t, data.TopAbsent, 1)
	assert.Equal(t, "Siswa 1", data.TopAbsent[0].FullName)
	assert.Equal(t, int64(5), data.TopAbsent[0].Absences)

	// Unpaid urut due date naik: overdue (5 hari lalu) paling atas
	require.Len(t, data.UpcomingUnpaid, 3)
	assert.Equal(t, "Uang Kegiatan", data.UpcomingUnpaid[0].Title)
	assert.Equal(t, "SPP September", data.UpcomingUnpaid[1].Title)
	assert.Equal(t, "Uang Buku", data.UpcomingUnpaid[2].Title)
}

func TestLoadDashboardDataTeacherScoped(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)

	teacherID, studentIDs := seedSchool(t, db)
	seedInvoices(t, db, studentIDs[0], studentIDs[4])

	data := LoadDashboardData(db, teacherID, constants.RoleTeacher)

	assert.Equal(t, int64(1), data.ClassCount)
	assert.Equal(t, int64(2), data.StudentCount)
	// 14 record kelas pertama, 5 absen → 9 hadir → round(64.28) = 64
	assert.Equal(t, int64(14), data.AttendanceTotal)
	assert.Equal(t, int64(9), data.PresentCount)
	assert.Equal(t, 64, data.AttendanceRate)

	// Invoice tersaring lewat kelas siswanya: hanya 2 invoice kelas pertama
	assert.Equal(t, int64(180000), data.OutstandingCents)
	assert.Equal(t, int64(0), data.OverdueCount)
	assert.Equal(t, int64(95000), data.PaidThisMonthCents)
	require.Len(t, data.UpcomingUnpaid, 1)
	assert.Equal(t, "SPP September", data.UpcomingUnpaid[0].Title)
}

func TestLoadDashboardDataTeacherWithoutClasses(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)

	seedSchool(t, db)

	data := LoadDashboardData(db, uuid.New(), constants.RoleTeacher)
	assert.Equal(t, int64(0), data.StudentCount)
	assert.Equal(t, 0, data.AttendanceRate)
	assert.Empty(t, data.TopAbsent)
}

func TestAttendanceWindowIncludesSeventhDay(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)

	class := classModel.ClassModel{ID: uuid.New(), Name: "Kelas 1A", Grade: "1", TeacherName: "Bu Sari"}
	require.NoError(t, db.Create(&class).Error)
	student := studentModel.StudentModel{ID: uuid.New(), FullName: "Siswa 1", ClassID: class.ID}
	require.NoError(t, db.Create(&student).Error)

	for _, daysAgo := range []int{7, 8} {
		require.NoError(t, db.Create(&attendanceModel.AttendanceRecordModel{
			ID:             uuid.New(),
			StudentID:      student.ID,
			ClassID:        class.ID,
			AttendanceDate: dateAgo(daysAgo),
			Status:         "present",
		}).Error)
	}

	data := LoadDashboardData(db, uuid.New(), constants.RoleAdmin)
	// Tepat 7 hari lalu masih masuk; 8 hari lalu tidak
	assert.Equal(t, int64(1), data.AttendanceTotal)
	assert.Equal(t, int64(1), data.PresentCount)
}

func TestLoadDashboardDataEmptyDB(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)

	data := LoadDashboardData(db, uuid.New(), constants.RoleAdmin)
	assert.Equal(t, int64(0), data.ClassCount)
	assert.Equal(t, 0, data.AttendanceRate)
	assert.Equal(t, int64(0), data.OutstandingCents)
	assert.Empty(t, data.UpcomingUnpaid)
}

func TestLoadDashboardDataFallsBackToDemoOnReadError(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)
	InitDemoFallback()

	// Tabel hilang = error baca; seluruh dashboard jatuh ke demo
	require.NoError(t, db.Exec("DROP TABLE classes").Error)

	data := LoadDashboardData(db, uuid.New(), constants.RoleAdmin)
	assert.True(t, data.Demo)
	assert.Equal(t, int64(3), data.ClassCount)
	assert.Equal(t, int64(345000), data.OutstandingCents)
}
