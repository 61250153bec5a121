package service

import (
	"powerschool_backend/internals/features/school/timetable/model"
)

// Overlaps: dua interval waktu setengah-terbuka [startA, endA) dan
// [startB, endB) beririsan. Slot yang menempel (endA == startB) tidak
// dihitung bentrok. Waktu dibanding sebagai string "HH:MM" (lexicographic
// order sama dengan urutan waktu untuk format zero-padded).
func Overlaps(startA, endA, startB, endB string) bool {
	return startA < endB && startB < endA
}

// FindClash mencari entri existing yang bentrok dengan kandidat:
// hari sama, dan (kelas sama ATAU guru sama non-kosong), dan interval
// waktunya beririsan. Return nil jika aman.
func FindClash(candidate model.TimetableEntryModel, existing []model.TimetableEntryModel) *model.TimetableEntryModel {
	for i := range existing {
		e := &existing[i]
		if e.ID == candidate.ID {
			continue
		}
		if e.DayOfWeek != candidate.DayOfWeek {
			continue
		}

		sameClass := e.ClassID == candidate.ClassID
		sameTeacher := e.TeacherID != nil && candidate.TeacherID != nil &&
			*e.TeacherID == *candidate.TeacherID
		if !sameClass && !sameTeacher {
			continue
		}

		if Overlaps(candidate.StartTime, candidate.EndTime, e.StartTime, e.EndTime) {
			return e
		}
	}
	return nil
}
