package testdb

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open membuka SQLite in-memory untuk test. Skema dibuat lewat DDL
// eksplisit: default gen_random_uuid() di model hanya ada di Postgres,
// jadi di sini id memakai randomblob.
func Open() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	for _, ddl := range schema {
		ddl = strings.ReplaceAll(ddl, "__uuid__", uuidDefault)
		if err := db.Exec(ddl).Error; err != nil {
			return nil, err
		}
	}
	return db, nil
}

// UUID v4 kanonik (pakai tanda hubung) supaya id yang digenerate DB
// cocok dengan binding uuid.UUID dari Go.
const uuidDefault = `(lower(hex(randomblob(4))) || '-' ||
	lower(hex(randomblob(2))) || '-4' ||
	substr(lower(hex(randomblob(2))), 2) || '-' ||
	substr('89ab', abs(random()) % 4 + 1, 1) ||
	substr(lower(hex(randomblob(2))), 2) || '-' ||
	lower(hex(randomblob(6))))`

var schema = []string{
	`CREATE TABLE classes (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		name TEXT NOT NULL UNIQUE,
		grade TEXT NOT NULL,
		teacher_name TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE teacher_classes (
		user_id TEXT NOT NULL,
		class_id TEXT NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (user_id, class_id)
	)`,
	`CREATE TABLE students (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		full_name TEXT NOT NULL,
		email TEXT,
		guardian_name TEXT,
		guardian_email TEXT,
		father_name TEXT,
		mother_name TEXT,
		phone TEXT,
		birth_date TEXT,
		previous_school TEXT,
		medical_info TEXT,
		class_id TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE subjects (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		class_id TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE attendance_records (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		student_id TEXT NOT NULL,
		class_id TEXT NOT NULL,
		attendance_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'present',
		note TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (student_id, attendance_date)
	)`,
	`CREATE TABLE attendance_locks (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		class_id TEXT NOT NULL,
		attendance_date TEXT NOT NULL,
		locked INTEGER NOT NULL,
		locked_by TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (class_id, attendance_date)
	)`,
	`CREATE TABLE grades (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		student_id TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		term TEXT NOT NULL,
		score REAL NOT NULL,
		max_score REAL NOT NULL DEFAULT 100,
		letter TEXT NOT NULL,
		comment TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (student_id, subject_id, term)
	)`,
	`CREATE TABLE exams (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		class_id TEXT NOT NULL,
		subject_id TEXT,
		name TEXT NOT NULL,
		exam_type TEXT NOT NULL,
		term TEXT NOT NULL,
		exam_date TEXT NOT NULL,
		max_score REAL NOT NULL DEFAULT 100,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE exam_scores (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		exam_id TEXT NOT NULL,
		student_id TEXT NOT NULL,
		score REAL NOT NULL,
		letter TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (exam_id, student_id)
	)`,
	`CREATE TABLE homework (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		class_id TEXT NOT NULL,
		subject_id TEXT,
		title TEXT NOT NULL,
		description TEXT,
		due_date TEXT NOT NULL,
		attachment_url TEXT,
		created_by TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE homework_submissions (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		homework_id TEXT NOT NULL,
		student_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		score REAL,
		note TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (homework_id, student_id)
	)`,
	`CREATE TABLE fee_invoices (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		student_id TEXT NOT NULL,
		title TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		issued_on TEXT NOT NULL DEFAULT '',
		due_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		paid_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE payments (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		invoice_id TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		method TEXT NOT NULL DEFAULT 'manual',
		gateway_order_id TEXT,
		recorded_by TEXT,
		paid_at DATETIME NOT NULL,
		created_at DATETIME
	)`,
	`CREATE TABLE activity_logs (
		id TEXT PRIMARY KEY DEFAULT __uuid__,
		user_id TEXT,
		action TEXT NOT NULL,
		entity TEXT NOT NULL,
		entity_id TEXT,
		meta TEXT,
		created_at DATETIME
	)`,
}
