package cli

import (
	"errors"
	"fmt"
	"net/mail"

	"github.com/trackora/trackora/internal/db"
	"github.com/trackora/trackora/internal/models"
	"github.com/trackora/trackora/internal/security"
	"github.com/trackora/trackora/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// Trackora is single-host with no outbound email, so password recovery is
// an operator action: reset the account to a generated temporary password
// and hand it over out of band.
func RunResetPasswordCommand(dbPath string, email string) error {
	address := services.NormalizeEmail(email)
	if address == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	var user models.User
	if err := database.Where("email = ?", address).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no account for %s", address)
		}
		return fmt.Errorf("load user: %w", err)
	}

	// Ambiguous characters (0/O, 1/l/I) are left out of the alphabet since
	// the password is read back to the user verbally or over chat.
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	temporaryPassword, err := security.RandomString(temporaryPasswordLength, alphabet)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	if err := database.Save(&user).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	fmt.Printf("Password for %s has been reset.\n", address)
	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	return nil
}
