package models

import "time"

type User struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Password    string     `json:"-"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Profile *Profile `json:"-"`
	Hobbies []Hobby  `json:"-"`
}

type UserResponse struct {
	ID          string           `json:"id"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	DateOfBirth *string          `json:"date_of_birth"`
	Profile     *ProfileResponse `json:"profile"`
	Hobbies     []HobbyResponse  `json:"hobbies"`
	Age         int              `json:"age"`
}

type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Age is the number of whole years between the birth date and today.
// The month/day comparison keeps the count correct on the birthday itself.
func (u *User) Age(today time.Time) int {
	if u.DateOfBirth == nil {
		return 0
	}
	birth := *u.DateOfBirth
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

func (u *User) ToResponse(today time.Time) *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Hobbies:   []HobbyResponse{},
		Age:       u.Age(today),
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	if u.Profile != nil {
		resp.Profile = u.Profile.ToResponse()
	}
	for _, h := range u.Hobbies {
		resp.Hobbies = append(resp.Hobbies, *h.ToResponse())
	}
	return resp
}

func (u *User) ToSummary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
