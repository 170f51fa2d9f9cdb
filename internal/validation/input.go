package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Константы валидации
const (
	MinUsernameLength    = 3
	MaxUsernameLength    = 30
	MinDisplayNameLength = 2
	MaxDisplayNameLength = 100
	MinPostTitleLength   = 3
	MaxPostTitleLength   = 300
	MinPostBodyLength    = 1
	MaxPostBodyLength    = 40000
	MinCommentLength     = 1
	MaxCommentLength     = 10000
	MaxBioLength         = 1000
	MinSpaceNameLength   = 3
	MaxSpaceNameLength   = 100
	MinSlugLength        = 3
	MaxSlugLength        = 50
	MaxDescriptionLength = 500
	MaxReasonLength      = 1000
	MaxJustificationLen  = 2000
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	if !strings.Contains(email, "@") {
		return fmt.Errorf("email должен содержать символ @")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("доменная часть email должна содержать точку")
	}

	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}

	username = strings.TrimSpace(username)

	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	// Только буквы, цифры и подчеркивание
	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}

	if len(username) > 0 && unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("имя пользователя не может начинаться с цифры")
	}

	return nil
}

// ValidateDisplayName проверяет отображаемое имя.
func ValidateDisplayName(displayName string) error {
	if displayName == "" {
		return fmt.Errorf("отображаемое имя обязательно")
	}

	return ValidateLength("отображаемое имя", strings.TrimSpace(displayName), MinDisplayNameLength, MaxDisplayNameLength)
}

// ValidatePostTitle проверяет заголовок поста.
func ValidatePostTitle(title string) error {
	if err := ValidateNonEmpty("заголовок поста", title); err != nil {
		return err
	}
	return ValidateLength("заголовок поста", strings.TrimSpace(title), MinPostTitleLength, MaxPostTitleLength)
}

// ValidatePostBody проверяет тело поста.
func ValidatePostBody(body string) error {
	if err := ValidateNonEmpty("текст поста", body); err != nil {
		return err
	}
	return ValidateLength("текст поста", body, MinPostBodyLength, MaxPostBodyLength)
}

// ValidateCommentBody проверяет текст комментария.
func ValidateCommentBody(body string) error {
	if err := ValidateNonEmpty("текст комментария", body); err != nil {
		return err
	}
	return ValidateLength("текст комментария", body, MinCommentLength, MaxCommentLength)
}

// ValidateSpaceName проверяет название сообщества.
func ValidateSpaceName(name string) error {
	if err := ValidateNonEmpty("название сообщества", name); err != nil {
		return err
	}
	return ValidateLength("название сообщества", strings.TrimSpace(name), MinSpaceNameLength, MaxSpaceNameLength)
}

// ValidateSlug проверяет slug сообщества: строчные буквы, цифры и дефис.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug обязателен")
	}

	if err := ValidateLength("slug", slug, MinSlugLength, MaxSlugLength); err != nil {
		return err
	}

	slugRegex := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug может содержать только строчные буквы, цифры и дефис")
	}

	return nil
}

// ValidateBio проверяет биографию.
func ValidateBio(bio *string) error {
	if bio == nil {
		return nil
	}
	return ValidateLength("биография", *bio, 0, MaxBioLength)
}

// ValidateReason проверяет текст причины решения модератора.
func ValidateReason(reason string) error {
	if err := ValidateNonEmpty("причина", reason); err != nil {
		return err
	}
	return ValidateLength("причина", reason, 0, MaxReasonLength)
}

// ValidateJustification проверяет обоснование запроса на верификацию.
func ValidateJustification(justification string) error {
	if err := ValidateNonEmpty("обоснование", justification); err != nil {
		return err
	}
	return ValidateLength("обоснование", justification, 0, MaxJustificationLen)
}
