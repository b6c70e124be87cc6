package services

import (
	"errors"
	"strings"

	"github.com/frans1979valk/vastelijn-portal/config"
	"github.com/frans1979valk/vastelijn-portal/models"
	"github.com/frans1979valk/vastelijn-portal/utils"

	"gorm.io/gorm"
)

// ErrRegistrationClosed is returned once any user row exists; only the
// first account can ever self-register.
var ErrRegistrationClosed = errors.New("registratie is uitgeschakeld, admin account bestaat al")

var ErrInvalidCredentials = errors.New("onjuiste login")

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterFirstAdmin creates the one and only self-registered account.
// The count check and insert run in a single transaction so two racing
// registrations cannot both pass the empty-table check.
func RegisterFirstAdmin(email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrRegistrationClosed
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate looks up the user by normalized email and verifies the
// password against the stored bcrypt hash.
func Authenticate(email, password string) (*models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", normalizeEmail(email)).First(&user)
	if result.Error != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
