package domain

// StudentCollection names the students file.
const StudentCollection = "students"

// Student is a registered student. AdmissionNumber is the unique key.
type Student struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AdmissionNumber string `json:"admissionNumber"`
	Class           string `json:"class"`
	Section         string `json:"section"`
	Gender          string `json:"gender"`
	MobileNumber    string `json:"mobileNumber"`
	Address         string `json:"address"`
	// PasswordHash is stored under "password" to keep the on-disk layout
	// of existing data files. It only ever holds a bcrypt hash.
	PasswordHash string `json:"password"`
}

// UniqueKey implements repository.Entity.
func (s Student) UniqueKey() string {
	return s.AdmissionNumber
}
