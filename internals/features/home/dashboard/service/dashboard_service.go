package service

import (
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"powerschool_backend/internals/constants"
	feeModel "powerschool_backend/internals/features/finance/fees/model"
	attendanceModel "powerschool_backend/internals/features/school/attendance/model"
	classModel "powerschool_backend/internals/features/school/classes/model"
	studentModel "powerschool_backend/internals/features/school/students/model"
)

type AbsentStudent struct {
	StudentID string `json:"student_id"`
	FullName  string `json:"full_name"`
	Absences  int64  `json:"absences"`
}

type UpcomingInvoice struct {
	InvoiceID   string `json:"invoice_id"`
	StudentID   string `json:"student_id"`
	Title       string `json:"title"`
	AmountCents int64  `json:"amount_cents"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

type DashboardData struct {
	ClassCount          int64             `json:"class_count"`
	StudentCount        int64             `json:"student_count"`
	PresentCount        int64             `json:"present_count"`
	AttendanceTotal     int64             `json:"attendance_total"`
	AttendanceRate      int               `json:"attendance_rate"`
	OutstandingCents    int64             `json:"outstanding_cents"`
	OverdueCount        int64             `json:"overdue_count"`
	PaidThisMonthCents  int64             `json:"paid_this_month_cents"`
	InvoiceStatusCounts map[string]int64  `json:"invoice_status_counts"`
	TopAbsent           []AbsentStudent   `json:"top_absent"`
	UpcomingUnpaid      []UpcomingInvoice `json:"upcoming_unpaid"`
	Demo                bool              `json:"demo"`
}

// AttendanceRate: persen kehadiran dibulatkan ke integer terdekat.
// 0 jika belum ada record sama sekali.
func AttendanceRate(present, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(present) / float64(total)))
}

var demoFallback DashboardData

// InitDemoFallback menghitung dashboard demo sekali saat startup.
func InitDemoFallback() {
	demoFallback = DemoDashboard()
}

// LoadDashboardData mengagregasi dashboard sesuai role.
// Teacher hanya melihat kelas miliknya (via teacher_classes); invoice ikut
// tersaring lewat kelas siswanya. Error baca apa pun membuat SELURUH
// dashboard jatuh ke data demo, bukan campuran sebagian.
func LoadDashboardData(db *gorm.DB, userID uuid.UUID, role string) DashboardData {
	data, err := loadScoped(db, userID, role)
	if err != nil {
		log.Printf("[WARN] dashboard fallback ke data demo: %v", err)
		return demoFallback
	}
	return data
}

func loadScoped(db *gorm.DB, userID uuid.UUID, role string) (DashboardData, error) {
	var data DashboardData
	data.InvoiceStatusCounts = map[string]int64{}
	data.TopAbsent = []AbsentStudent{}
	data.UpcomingUnpaid = []UpcomingInvoice{}

	var classIDs []uuid.UUID
	teacherScoped := role == constants.RoleTeacher
	if teacherScoped {
		if err := db.Model(&classModel.TeacherClassModel{}).
			Where("user_id = ?", userID).
			Pluck("class_id", &classIDs).Error; err != nil {
			return data, err
		}
		classIDs = emptyGuard(classIDs)
	}

	// Jendela absensi: hari ini minus 7 hari, inklusif. Tanggal disimpan
	// YYYY-MM-DD, jadi perbandingan string sama dengan perbandingan tanggal.
	windowStart := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	monthStart := time.Now().AddDate(0, 0, -30).Format("2006-01-02")

	classQ := db.Model(&classModel.ClassModel{})
	studentQ := db.Model(&studentModel.StudentModel{})
	if teacherScoped {
		classQ = classQ.Where("id IN ?", classIDs)
		studentQ = studentQ.Where("class_id IN ?", classIDs)
	}
	if err := classQ.Count(&data.ClassCount).Error; err != nil {
		return data, err
	}
	if err := studentQ.Count(&data.StudentCount).Error; err != nil {
		return data, err
	}

	attendanceQ := func() *gorm.DB {
		q := db.Model(&attendanceModel.AttendanceRecordModel{}).
			Where("attendance_date >= ?", windowStart)
		if teacherScoped {
			q = q.Where("class_id IN ?", classIDs)
		}
		return q
	}
	if err := attendanceQ().Count(&data.AttendanceTotal).Error; err != nil {
		return data, err
	}
	if err := attendanceQ().Where("status = ?", "present").
		Count(&data.PresentCount).Error; err != nil {
		return data, err
	}
	data.AttendanceRate = AttendanceRate(data.PresentCount, data.AttendanceTotal)

	invoiceQ := func() *gorm.DB {
		q := db.Model(&feeModel.FeeInvoiceModel{})
		if teacherScoped {
			q = q.Where("student_id IN (?)",
				db.Model(&studentModel.StudentModel{}).
					Select("id").Where("class_id IN ?", classIDs))
		}
		return q
	}

	if err := invoiceQ().Where("status <> ?", "paid").
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&data.OutstandingCents).Error; err != nil {
		return data, err
	}
	if err := invoiceQ().Where("status = ?", "overdue").
		Count(&data.OverdueCount).Error; err != nil {
		return data, err
	}
	if err := invoiceQ().Where("status = ? AND issued_on >= ?", "paid", monthStart).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&data.PaidThisMonthCents).Error; err != nil {
		return data, err
	}

	type statusCount struct {
		Status string
		N      int64
	}
	var counts []statusCount
	if err := invoiceQ().Select("status, COUNT(*) AS n").
		Group("status").Scan(&counts).Error; err != nil {
		return data, err
	}
	for _, sc := range counts {
		data.InvoiceStatusCounts[sc.Status] = sc.N
	}

	topAbsent, err := loadTopAbsent(db, attendanceQ)
	if err != nil {
		return data, err
	}
	data.TopAbsent = topAbsent

	var unpaid []feeModel.FeeInvoiceModel
	if err := invoiceQ().Where("status <> ?", "paid").
		Order("due_date ASC").Limit(5).Find(&unpaid).Error; err != nil {
		return data, err
	}
	for _, inv := range unpaid {
		data.UpcomingUnpaid = append(data.UpcomingUnpaid, UpcomingInvoice{
			InvoiceID:   inv.ID.String(),
			StudentID:   inv.StudentID.String(),
			Title:       inv.Title,
			AmountCents: inv.AmountCents,
			DueDate:     inv.DueDate,
			Status:      inv.Status,
		})
	}

	return data, nil
}

// loadTopAbsent: tiga siswa dengan absen terbanyak (>0) dalam jendela.
func loadTopAbsent(db *gorm.DB, attendanceQ func() *gorm.DB) ([]AbsentStudent, error) {
	type absRow struct {
		StudentID uuid.UUID
		N         int64
	}
	var rows []absRow
	if err := attendanceQ().Where("status = ?", "absent").
		Select("student_id, COUNT(*) AS n").
		Group("student_id").
		Order("n DESC").
		Limit(3).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]AbsentStudent, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.StudentID)
	}
	var students []studentModel.StudentModel
	if err := db.Where("id IN ?", ids).Find(&students).Error; err != nil {
		return nil, err
	}
	nameByID := make(map[uuid.UUID]string, len(students))
	for _, s := range students {
		nameByID[s.ID] = s.FullName
	}

	for _, r := range rows {
		out = append(out, AbsentStudent{
			StudentID: r.StudentID.String(),
			FullName:  nameByID[r.StudentID],
			Absences:  r.N,
		})
	}
	return out, nil
}

// emptyGuard: IN () tidak valid di SQL; guru tanpa kelas melihat nol baris.
func emptyGuard(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return []uuid.UUID{uuid.Nil}
	}
	return ids
}
