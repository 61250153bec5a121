package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"powerschool_backend/internals/features/school/timetable/model"
)

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps("09:00", "09:45", "09:30", "10:00"))
	assert.True(t, Overlaps("09:30", "10:00", "09:00", "09:45"))
	assert.True(t, Overlaps("09:00", "10:00", "09:15", "09:30"))

	// Interval setengah-terbuka: slot yang menempel bukan bentrok
	assert.False(t, Overlaps("09:00", "09:45", "09:45", "10:30"))
	assert.False(t, Overlaps("09:45", "10:30", "09:00", "09:45"))
	assert.False(t, Overlaps("08:00", "08:30", "09:00", "09:30"))
}

func entry(classID uuid.UUID, teacherID *uuid.UUID, day int, start, end string) model.TimetableEntryModel {
	return model.TimetableEntryModel{
		ID:        uuid.New(),
		ClassID:   classID,
		TeacherID: teacherID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
	}
}

func TestFindClashSameClass(t *testing.T) {
	classID := uuid.New()
	existing := []model.TimetableEntryModel{
		entry(classID, nil, 1, "09:00", "09:45"),
	}

	candidate := entry(classID, nil, 1, "09:30", "10:00")
	candidate.ID = uuid.Nil
	assert.NotNil(t, FindClash(candidate, existing))

	adjacent := entry(classID, nil, 1, "09:45", "10:30")
	adjacent.ID = uuid.Nil
	assert.Nil(t, FindClash(adjacent, existing))
}

func TestFindClashSameTeacherAcrossClasses(t *testing.T) {
	teacherID := uuid.New()
	existing := []model.TimetableEntryModel{
		entry(uuid.New(), &teacherID, 2, "10:00", "11:00"),
	}

	candidate := entry(uuid.New(), &teacherID, 2, "10:30", "11:30")
	candidate.ID = uuid.Nil
	assert.NotNil(t, FindClash(candidate, existing))
}

func TestFindClashIgnoresOtherDaysAndNilTeachers(t *testing.T) {
	teacherID := uuid.New()
	existing := []model.TimetableEntryModel{
		entry(uuid.New(), &teacherID, 3, "10:00", "11:00"),
	}

	otherDay := entry(uuid.New(), &teacherID, 4, "10:00", "11:00")
	otherDay.ID = uuid.Nil
	assert.Nil(t, FindClash(otherDay, existing))

	// Kelas beda + guru tidak diisi: tidak ada sumber daya yang sama
	noTeacher := entry(uuid.New(), nil, 3, "10:00", "11:00")
	noTeacher.ID = uuid.Nil
	assert.Nil(t, FindClash(noTeacher, existing))
}

func TestFindClashSkipsSelfOnUpdate(t *testing.T) {
	classID := uuid.New()
	existing := []model.TimetableEntryModel{
		entry(classID, nil, 1, "09:00", "09:45"),
	}

	// Entri yang sama (ID identik) tidak bentrok dengan dirinya sendiri
	self := existing[0]
	assert.Nil(t, FindClash(self, existing))
}
