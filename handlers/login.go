package handlers

import (
	stderrors "errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"travelify/database"
	"travelify/errors"
	"travelify/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 8 * time.Hour

func isPasswordHashCorrect(dbHash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(pass))
	return err == nil
}

func (h *Handlers) Login(c *fiber.Ctx) error {
	type Credentials struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	var creds = new(Credentials)

	if err := c.BodyParser(creds); err != nil {
		return errors.RaiseBadRequestError(c, "Error on login request when parse credentials")
	}

	user, geterr := h.Users.GetUserData(c.UserContext(), creds.Login)
	if stderrors.Is(geterr, database.ErrNotFound) || (geterr == nil && !isPasswordHashCorrect(user.HashedPassword, creds.Password)) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"status":  "error",
			"message": "Invalid login or password",
			"data":    nil})
	}
	if geterr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("Error on login request when comparing user data: %v", geterr))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Login,
		"user_id":  user.Id.Hex(),
		"role":     user.Role,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})

	t, err := token.SignedString([]byte(h.Sign))
	if err != nil {
		log.WithError(err).Error("cannot sign login token")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Success login", "data": t})
}

func (h *Handlers) Register(c *fiber.Ctx) error {
	type registration struct {
		Login    string `json:"login"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	input := new(registration)
	if err := c.BodyParser(input); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable registration parameters: %v", err))
	}
	input.Login = strings.TrimSpace(input.Login)
	input.Name = strings.TrimSpace(input.Name)

	email, validationErr := validateRegistration(input.Login, input.Email, input.Password)
	if validationErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for registration: %v", validationErr))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.RaiseInternalServerError(c, "cannot hash password")
	}

	user := model.UserData{
		Id:             primitive.NewObjectID(),
		Login:          input.Login,
		Email:          email,
		Name:           input.Name,
		HashedPassword: string(hash),
		Role:           model.RoleUser,
	}
	writeErr := h.Users.CreateUser(c.UserContext(), user)
	if stderrors.Is(writeErr, database.ErrDuplicate) {
		return errors.RaiseConflictError(c, fmt.Sprintf("login %v is already taken", user.Login))
	}
	if writeErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", writeErr))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "message": "user registered", "data": user})
}

// validateRegistration returns the bare address part of email, which is
// what the mailer later uses as the SMTP recipient.
func validateRegistration(login, email, password string) (string, error) {
	if len(login) < 3 {
		return "", fmt.Errorf("login is too short")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", fmt.Errorf("email is not valid")
	}
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}
	return addr.Address, nil
}
