package service

import (
	"fmt"
	"sort"
	"time"
)

// Data demo untuk fallback dashboard saat DB bermasalah.
// Bentuknya sengaja kecil tapi cukup untuk mengisi semua angka turunan;
// tanggal dihitung relatif terhadap hari ini supaya jendela 7-hari dan
// 30-hari tetap terisi kapan pun dipakai.

type demoStudent struct {
	Name     string
	ClassIdx int
}

type demoInvoice struct {
	Title         string
	AmountCents   int64
	Status        string
	DueOffsetDays int
	StudentIdx    int
}

var demoClasses = []string{"Kelas 1A", "Kelas 2B", "Kelas 3C"}

var demoStudents = []demoStudent{
	{"Aisha Rahman", 0},
	{"Budi Santoso", 0},
	{"Citra Lestari", 1},
	{"Dimas Prasetyo", 1},
	{"Eka Putri", 2},
	{"Fajar Nugroho", 2},
}

var demoInvoices = []demoInvoice{
	{"SPP September", 180000, "pending", 7, 0},
	{"SPP Agustus", 95000, "paid", -10, 2},
	{"Uang Kegiatan", 120000, "overdue", -5, 3},
	{"Uang Buku", 45000, "pending", 14, 5},
}

const demoAttendanceDays = 6

// demoAbsent: siswa ke-i absen di hari ke-d jika (i+d)%7 == 0,
// dengan catatan "Guardian notified".
func demoAbsent(studentIdx, dayIdx int) bool {
	return (studentIdx+dayIdx)%7 == 0
}

// DemoDashboard menghitung dashboard dari data demo, dipakai baik
// sebagai fallback maupun sebagai fixture test.
func DemoDashboard() DashboardData {
	var present, total int64
	absences := make([]int64, len(demoStudents))
	for i := range demoStudents {
		for d := 0; d < demoAttendanceDays; d++ {
			total++
			if demoAbsent(i, d) {
				absences[i]++
			} else {
				present++
			}
		}
	}

	var outstanding, overdueCount, paidThisMonth int64
	statusCounts := map[string]int64{}
	upcoming := []UpcomingInvoice{}
	for i, inv := range demoInvoices {
		statusCounts[inv.Status]++
		dueDate := time.Now().AddDate(0, 0, inv.DueOffsetDays).Format("2006-01-02")
		switch inv.Status {
		case "paid":
			paidThisMonth += inv.AmountCents
		default:
			outstanding += inv.AmountCents
			upcoming = append(upcoming, UpcomingInvoice{
				InvoiceID:   fmt.Sprintf("demo-invoice-%d", i+1),
				StudentID:   fmt.Sprintf("demo-student-%d", inv.StudentIdx+1),
				Title:       inv.Title,
				AmountCents: inv.AmountCents,
				DueDate:     dueDate,
				Status:      inv.Status,
			})
		}
		if inv.Status == "overdue" {
			overdueCount++
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate < upcoming[j].DueDate
	})

	type idxAbs struct {
		idx int
		n   int64
	}
	var ranked []idxAbs
	for i, n := range absences {
		if n > 0 {
			ranked = append(ranked, idxAbs{i, n})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].n > ranked[j].n })
	topAbsent := []AbsentStudent{}
	for _, r := range ranked {
		if len(topAbsent) == 3 {
			break
		}
		topAbsent = append(topAbsent, AbsentStudent{
			StudentID: fmt.Sprintf("demo-student-%d", r.idx+1),
			FullName:  demoStudents[r.idx].Name,
			Absences:  r.n,
		})
	}

	return DashboardData{
		ClassCount:          int64(len(demoClasses)),
		StudentCount:        int64(len(demoStudents)),
		PresentCount:        present,
		AttendanceTotal:     total,
		AttendanceRate:      AttendanceRate(present, total),
		OutstandingCents:    outstanding,
		OverdueCount:        overdueCount,
		PaidThisMonthCents:  paidThisMonth,
		InvoiceStatusCounts: statusCounts,
		TopAbsent:           topAbsent,
		UpcomingUnpaid:      upcoming,
		Demo:                true,
	}
}
