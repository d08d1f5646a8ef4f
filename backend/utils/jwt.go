package utils

import (
	"errors"
	"fmt"
	"time"
	"zomgpow/backend/config"
	"zomgpow/backend/models"

	"github.com/golang-jwt/jwt/v4"
)

// Role discriminates the two token shapes. Teachers and students authenticate
// differently and their tokens carry different claims, so the role is an
// explicit claim rather than something inferred from which fields happen to
// be present.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Principal is a resolved token: who the request is from. UserName is only
// set for students.
type Principal struct {
	Role     Role
	UserID   uint
	UserName string
}

// sessionClaims is the wire shape. Teacher tokens carry user_id, student
// tokens carry id and user_name; the role claim decides which on the way in.
type sessionClaims struct {
	Role      Role   `json:"role"`
	UserID    uint   `json:"user_id,omitempty"`
	StudentID uint   `json:"id,omitempty"`
	UserName  string `json:"user_name,omitempty"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

func GenerateTeacherToken(teacher *models.Teacher, cfg *config.Config) (string, error) {
	return signToken(sessionClaims{
		Role:             RoleTeacher,
		UserID:           teacher.ID,
		RegisteredClaims: registeredClaims(teacher.Email, cfg.JWTExpiry),
	}, cfg)
}

func GenerateStudentToken(student *models.Student, cfg *config.Config) (string, error) {
	return signToken(sessionClaims{
		Role:             RoleStudent,
		StudentID:        student.ID,
		UserName:         student.UserName,
		RegisteredClaims: registeredClaims(student.UserName, cfg.JWTExpiry),
	}, cfg)
}

func registeredClaims(subject string, expiry time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
	}
}

func signToken(claims sessionClaims, cfg *config.Config) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken verifies the signature and expiry and resolves the claims into a
// Principal. Tokens with an unknown role are rejected outright.
func ParseToken(tokenString string, cfg *config.Config) (*Principal, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	switch claims.Role {
	case RoleTeacher:
		return &Principal{Role: RoleTeacher, UserID: claims.UserID}, nil
	case RoleStudent:
		return &Principal{Role: RoleStudent, UserID: claims.StudentID, UserName: claims.UserName}, nil
	default:
		return nil, ErrInvalidToken
	}
}
