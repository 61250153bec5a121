package dto

type CreateStudentRequest struct {
	FullName       string  `json:"full_name"       validate:"required,min=2,max=150"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	GuardianName   *string `json:"guardian_name"   validate:"omitempty,max=150"`
	GuardianEmail  *string `json:"guardian_email"  validate:"omitempty,email"`
	FatherName     *string `json:"father_name"     validate:"omitempty,max=150"`
	MotherName     *string `json:"mother_name"     validate:"omitempty,max=150"`
	Phone          *string `json:"phone"           validate:"omitempty,max=30"`
	BirthDate      *string `json:"birth_date"      validate:"omitempty,datetime=2006-01-02"`
	PreviousSchool *string `json:"previous_school" validate:"omitempty,max=200"`
	MedicalInfo    *string `json:"medical_info"`
	ClassID        string  `json:"class_id"        validate:"required,uuid"`
}

type UpdateStudentRequest struct {
	FullName       *string `json:"full_name,omitempty"       validate:"omitempty,min=2,max=150"`
	Email          *string `json:"email,omitempty"           validate:"omitempty,email"`
	GuardianName   *string `json:"guardian_name,omitempty"   validate:"omitempty,max=150"`
	GuardianEmail  *string `json:"guardian_email,omitempty"  validate:"omitempty,email"`
	FatherName     *string `json:"father_name,omitempty"     validate:"omitempty,max=150"`
	MotherName     *string `json:"mother_name,omitempty"     validate:"omitempty,max=150"`
	Phone          *string `json:"phone,omitempty"           validate:"omitempty,max=30"`
	BirthDate      *string `json:"birth_date,omitempty"      validate:"omitempty,datetime=2006-01-02"`
	PreviousSchool *string `json:"previous_school,omitempty" validate:"omitempty,max=200"`
	MedicalInfo    *string `json:"medical_info,omitempty"`
	ClassID        *string `json:"class_id,omitempty"        validate:"omitempty,uuid"`
}
