package domain

type User struct {
	ID            int32   `json:"id"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	StudentNumber *string `json:"student_number,omitempty"`
	CreatedOn     string  `json:"created_on"`
}

// Requester is a prospective member, classified once when a join attempt enters the system.
// It is either a Student or an Associate.
type Requester interface {
	RequesterID() int32
	isRequester()
}

// Student is a requester verified by a student number. Students are admitted without queueing.
type Student struct {
	UserID int32
	Number string
}

// Associate is any requester without a student number. Associates are queued for approval.
type Associate struct {
	UserID int32
}

func (s Student) RequesterID() int32   { return s.UserID }
func (a Associate) RequesterID() int32 { return a.UserID }
func (Student) isRequester()           {}
func (Associate) isRequester()         {}

// ClassifyRequester resolves a user into a Student when a non-empty student number is present.
func ClassifyRequester(u *User) Requester {
	if u.StudentNumber != nil && *u.StudentNumber != "" {
		return Student{UserID: u.ID, Number: *u.StudentNumber}
	}
	return Associate{UserID: u.ID}
}
