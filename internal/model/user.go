// Package model defines the data structures used throughout the application.
//
// Every stored record carries an "_id" in its JSON form and the four audit
// stamps in Audit. Write inputs (New*) and partial updates (*Patch) are
// separate types so that only the fields listed on them can ever reach the
// store.
package model

import "time"

// Audit holds the created/updated stamps shared by all records.
// Embedded so both encoding/json and sqlx flatten it into the parent.
type Audit struct {
	CreatedBy   string    `json:"createdBy"   db:"created_by"`
	CreatedDate time.Time `json:"createdDate" db:"created_date"`
	UpdatedBy   string    `json:"updatedBy"   db:"updated_by"`
	UpdatedDate time.Time `json:"updatedDate" db:"updated_date"`
}

// Stamp sets both created and updated stamps to the same actor and time.
func (a *Audit) Stamp(actor string, now time.Time) {
	a.CreatedBy = actor
	a.CreatedDate = now
	a.UpdatedBy = actor
	a.UpdatedDate = now
}

// User is an employee account.
//
// The password is stored as given (no hashing unless the server runs with
// bcrypt enabled) and is never serialised: the json:"-" tag keeps it out
// of every response.
type User struct {
	ID        string `json:"_id"       db:"id"`
	UserName  string `json:"userName"  db:"user_name"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName"  db:"last_name"`
	Sex       string `json:"sex"       db:"sex"`
	Role      string `json:"role"      db:"role"`
	Password  string `json:"-"         db:"password"`
	Audit
}

// FullName is the reviewer label shown on reviews.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// NewUser is the registration payload.
type NewUser struct {
	UserName  string `json:"userName"  validate:"required"`
	Password  string `json:"password"  validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Sex       string `json:"sex"       validate:"required"`
	Role      string `json:"role"      validate:"required"`
}

// Credentials is the login payload.
type Credentials struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserPatch lists the user fields a client may change. Nil means "leave as
// stored"; a supplied field must not be empty.
type UserPatch struct {
	UserName  *string `json:"userName"  validate:"omitnil,min=1"`
	FirstName *string `json:"firstName" validate:"omitnil,min=1"`
	LastName  *string `json:"lastName"  validate:"omitnil,min=1"`
	Sex       *string `json:"sex"       validate:"omitnil,min=1"`
	Role      *string `json:"role"      validate:"omitnil,min=1"`
	Password  *string `json:"password"  validate:"omitnil,min=1"`
}

// Apply merges the supplied fields onto u.
func (p UserPatch) Apply(u *User) {
	set(&u.UserName, p.UserName)
	set(&u.FirstName, p.FirstName)
	set(&u.LastName, p.LastName)
	set(&u.Sex, p.Sex)
	set(&u.Role, p.Role)
	set(&u.Password, p.Password)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
