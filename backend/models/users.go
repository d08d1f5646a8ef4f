package models

import "gorm.io/gorm"

// Teacher accounts authenticate with email and password. Students only hold a
// username: the classroom flow hands usernames out in person, so possession of
// the username is the whole credential.
type Teacher struct {
	gorm.Model
	Email        string `gorm:"unique;not null"`
	FullName     string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
}

type Student struct {
	gorm.Model
	UserName string `gorm:"unique;not null"`
	FullName string
	ClassID  uint   `gorm:"index"`
}

type Class struct {
	gorm.Model
	ClassName string `gorm:"not null"`
	TeacherID uint   `gorm:"index"`
}
