package validator

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minUsernameLength = 2
	maxUsernameLength = 64
	minPasswordLength = 8
	maxPasswordLength = 128
	maxFileNameLen    = 255
	maxFolderNameLen  = 255
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt          = "email cannot be empty"
	errEmailLengthFmt         = "email must be between %d and %d characters"
	errEmailInvalidFmt        = "invalid email format"
	errUsernameEmptyFmt       = "username cannot be empty"
	errUsernameLengthFmt      = "username must be between %d and %d characters"
	errPasswordMinLengthFmt   = "password must be at least %d characters"
	errPasswordMaxLengthFmt   = "password must not exceed %d characters"
	errPhoneInvalidFmt        = "invalid phone number format"
	errFileNameEmptyFmt       = "filename cannot be empty"
	errFileNameMaxLengthFmt   = "filename must not exceed %d characters"
	errFileNamePathSepFmt     = "filename cannot contain path separators"
	errFileNameControlFmt     = "filename cannot contain control characters"
	errFileSizeNotPositiveFmt = "file size must be greater than zero"
	errFolderNameEmptyFmt     = "folder name cannot be empty"
	errFolderNameMaxLengthFmt = "folder name must not exceed %d characters"
	errFolderNameControlFmt   = "folder name cannot contain control characters"
	errPermissionEmptyFmt     = "permission cannot be empty"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Username(username string) error {
	if username == "" {
		return fmt.Errorf(errUsernameEmptyFmt)
	}

	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf(errUsernameLengthFmt, minUsernameLength, maxUsernameLength)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

// Phone accepts E.164-style numbers. Empty is allowed; phone is an
// optional attribute.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}

	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf(errPhoneInvalidFmt)
	}

	return nil
}

func FileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}

	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}

	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf(errFileNamePathSepFmt)
	}

	if hasControlChars(name) {
		return fmt.Errorf(errFileNameControlFmt)
	}

	return nil
}

func FileSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf(errFileSizeNotPositiveFmt)
	}

	return nil
}

func FolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(errFolderNameEmptyFmt)
	}

	if len(name) > maxFolderNameLen {
		return fmt.Errorf(errFolderNameMaxLengthFmt, maxFolderNameLen)
	}

	if hasControlChars(name) {
		return fmt.Errorf(errFolderNameControlFmt)
	}

	return nil
}

func Permission(permission string) error {
	if strings.TrimSpace(permission) == "" {
		return fmt.Errorf(errPermissionEmptyFmt)
	}

	return nil
}

func hasControlChars(s string) bool {
	for _, r := range s {
		if r < asciiControlStart || r == asciiDelete {
			return true
		}
	}
	return false
}
