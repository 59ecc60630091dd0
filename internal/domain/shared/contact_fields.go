package shared

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+\.]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	vatPattern   = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{2,13}$`)
)

// ContactInfo groups the reachability fields shared by partners, companies and organizations
type ContactInfo struct {
	Email   string
	Phone   string
	Website string
}

// Normalize trims the fields and lowercases the email
func (c ContactInfo) Normalize() ContactInfo {
	return ContactInfo{
		Email:   strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:   strings.TrimSpace(c.Phone),
		Website: strings.TrimSpace(c.Website),
	}
}

// Validate checks email and phone formats when present
func (c ContactInfo) Validate() error {
	if c.Email != "" {
		if err := ValidateEmail(c.Email); err != nil {
			return err
		}
	}
	if c.Phone != "" {
		if err := ValidatePhone(c.Phone); err != nil {
			return err
		}
	}
	if len(c.Website) > 255 {
		return NewFieldError("INVALID_WEBSITE", "website", "Website cannot exceed 255 characters")
	}
	return nil
}

// ValidateEmail checks an email address
func ValidateEmail(email string) error {
	if len(email) > 200 {
		return NewFieldError("INVALID_EMAIL", "email", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return NewFieldError("INVALID_EMAIL", "email", "Invalid email format")
	}
	return nil
}

// ValidatePhone checks a phone number
func ValidatePhone(phone string) error {
	if len(phone) > 50 {
		return NewFieldError("INVALID_PHONE", "phone", "Phone number cannot exceed 50 characters")
	}
	if !phonePattern.MatchString(phone) {
		return NewFieldError("INVALID_PHONE", "phone", "Invalid phone number format")
	}
	return nil
}

// FiscalIDs are the French registry numbers plus the intra-EU VAT number
type FiscalIDs struct {
	SIREN     string
	SIRET     string
	VATNumber string
}

// Normalize strips separators from SIREN/SIRET and uppercases the VAT number
func (f FiscalIDs) Normalize() FiscalIDs {
	return FiscalIDs{
		SIREN:     digitsOnly(f.SIREN),
		SIRET:     digitsOnly(f.SIRET),
		VATNumber: strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(f.VATNumber), " ", "")),
	}
}

// Validate checks lengths and formats of the identifiers that are set
func (f FiscalIDs) Validate() error {
	if f.SIREN != "" && !isDigits(f.SIREN, 9) {
		return NewFieldError("INVALID_SIREN", "siren", "SIREN must contain exactly 9 digits")
	}
	if f.SIRET != "" {
		if !isDigits(f.SIRET, 14) {
			return NewFieldError("INVALID_SIRET", "siret", "SIRET must contain exactly 14 digits")
		}
		if f.SIREN != "" && !strings.HasPrefix(f.SIRET, f.SIREN) {
			return NewFieldError("INVALID_SIRET", "siret", "SIRET must start with the SIREN")
		}
	}
	if f.VATNumber != "" && !vatPattern.MatchString(f.VATNumber) {
		return NewFieldError("INVALID_VAT_NUMBER", "vat_number", "Invalid VAT number format")
	}
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateRequiredName checks a required display name
func ValidateRequiredName(field, value string, max int) error {
	code := "INVALID_" + upperSnake(field)
	label := strings.ReplaceAll(field, "_", " ")
	if strings.TrimSpace(value) == "" {
		return NewFieldError(code, field, label+" cannot be empty")
	}
	if len(value) > max {
		return NewFieldError(code, field, fmt.Sprintf("%s cannot exceed %d characters", label, max))
	}
	return nil
}

// upperSnake turns legalName or legal_name into LEGAL_NAME
func upperSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

var referencePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-\./]*$`)

// NormalizeReference trims and uppercases a business reference
func NormalizeReference(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}

// ValidateReference checks a business reference such as CLI-0042
func ValidateReference(ref string) error {
	if ref == "" {
		return NewFieldError("INVALID_REFERENCE", "reference", "Reference cannot be empty")
	}
	if len(ref) > 50 {
		return NewFieldError("INVALID_REFERENCE", "reference", "Reference cannot exceed 50 characters")
	}
	if !referencePattern.MatchString(ref) {
		return NewFieldError("INVALID_REFERENCE", "reference",
			"Reference can only contain letters, numbers, dots, slashes, hyphens and underscores")
	}
	return nil
}
