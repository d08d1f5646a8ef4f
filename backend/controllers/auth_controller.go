package controllers

import (
	"errors"
	"zomgpow/backend/config"
	"zomgpow/backend/middleware"
	"zomgpow/backend/models"
	"zomgpow/backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

// TeacherLogin authenticates a teacher with email and password and returns a
// session token alongside the teacher's profile and class. Unknown email and
// wrong password produce the same message so the endpoint can't be used to
// probe which emails exist.
func (ac *AuthController) TeacherLogin(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Email == nil {
		return utils.BadRequest(c, "Missing 'email' in request body")
	}
	if input.Password == nil {
		return utils.BadRequest(c, "Missing 'password' in request body")
	}

	var teacher models.Teacher
	if err := ac.DB.WithContext(c.UserContext()).
		Where("email = ?", *input.Email).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest(c, "Incorrect email or password")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(*input.Password)); err != nil {
		return utils.BadRequest(c, "Incorrect email or password")
	}

	// Convenience payload: the class this teacher runs, bundled with the login
	// response. Not part of the token.
	var class models.Class
	if err := ac.DB.WithContext(c.UserContext()).
		Where("teacher_id = ?", teacher.ID).First(&class).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	token, err := utils.GenerateTeacherToken(&teacher, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":            teacher.ID,
			"full_name":     teacher.FullName,
			"email":         teacher.Email,
			"date_created":  teacher.CreatedAt,
			"date_modified": teacher.UpdatedAt,
		},
		"class":     class,
		"authToken": token,
	})
}

// StudentLogin authenticates a student with username alone. There is no
// student password: usernames are handed out in the classroom and knowing one
// is the whole credential.
func (ac *AuthController) StudentLogin(c *fiber.Ctx) error {
	type LoginInput struct {
		UserName *string `json:"user_name"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.UserName == nil {
		return utils.BadRequest(c, "Missing 'user_name' in request body")
	}

	var student models.Student
	if err := ac.DB.WithContext(c.UserContext()).
		Where("user_name = ?", *input.UserName).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest(c, "Incorrect username")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	token, err := utils.GenerateStudentToken(&student, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"authToken": token,
	})
}

// RenewStudentToken reissues a fresh token for an already-authenticated
// student. It is a refresh, not a login: no credentials are re-checked beyond
// the token the auth middleware already validated.
func (ac *AuthController) RenewStudentToken(c *fiber.Ctx) error {
	principal := middleware.PrincipalFromCtx(c)
	if principal == nil || principal.Role != utils.RoleStudent {
		return utils.Unauthorized(c, "Invalid token")
	}

	student := models.Student{UserName: principal.UserName}
	student.ID = principal.UserID

	token, err := utils.GenerateStudentToken(&student, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"authToken": token,
	})
}
