package company

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/company"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CompanyInput creates or updates a company
type CompanyInput struct {
	LegalName    string          `json:"legal_name" validate:"required,max=200" sanitize:"text"`
	TradeName    string          `json:"trade_name" validate:"max=200" sanitize:"text"`
	LegalForm    string          `json:"legal_form" validate:"max=50" sanitize:"text"`
	SIREN        string          `json:"siren" validate:"max=20"`
	SIRET        string          `json:"siret" validate:"max=20"`
	VATNumber    string          `json:"vat_number" validate:"max=20"`
	ShareCapital decimal.Decimal `json:"share_capital"`
	Email        string          `json:"email" validate:"omitempty,email,max=254"`
	Phone        string          `json:"phone" validate:"max=30"`
	Website      string          `json:"website" validate:"omitempty,url,max=255"`
}

func (in CompanyInput) details() company.Details {
	return company.Details{
		LegalName:    in.LegalName,
		TradeName:    in.TradeName,
		LegalForm:    in.LegalForm,
		Fiscal:       shared.FiscalIDs{SIREN: in.SIREN, SIRET: in.SIRET, VATNumber: in.VATNumber},
		ShareCapital: in.ShareCapital,
		Contact:      shared.ContactInfo{Email: in.Email, Phone: in.Phone, Website: in.Website},
	}
}

// LogoUploadInput asks for an upload URL
type LogoUploadInput struct {
	ContentType string `json:"content_type" validate:"required,max=100"`
}

// LogoConfirmInput attaches an uploaded object as the company logo
type LogoConfirmInput struct {
	Key string `json:"key" validate:"required,max=500"`
}

// LogoUploadResponse tells the client where to PUT the logo and which key to confirm
type LogoUploadResponse struct {
	Key    string       `json:"key"`
	Upload PresignedURL `json:"upload"`
}

// CompanyResponse is a company in API responses
type CompanyResponse struct {
	ID           uuid.UUID       `json:"id"`
	LegalName    string          `json:"legal_name"`
	TradeName    string          `json:"trade_name,omitempty"`
	DisplayName  string          `json:"display_name"`
	LegalForm    string          `json:"legal_form,omitempty"`
	SIREN        string          `json:"siren,omitempty"`
	SIRET        string          `json:"siret,omitempty"`
	VATNumber    string          `json:"vat_number,omitempty"`
	ShareCapital decimal.Decimal `json:"share_capital"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Website      string          `json:"website,omitempty"`
	IsMain       bool            `json:"is_main"`
	LogoKey      string          `json:"logo_key,omitempty"`
	// LogoURL is filled per request and never cached
	LogoURL    *PresignedURL `json:"logo_url,omitempty"`
	ArchivedAt *time.Time    `json:"archived_at,omitempty"`
	Version    int           `json:"version"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// ToCompanyResponse converts a domain company
func ToCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID,
		LegalName:    c.LegalName,
		TradeName:    c.TradeName,
		DisplayName:  c.DisplayName(),
		LegalForm:    c.LegalForm,
		SIREN:        c.Fiscal.SIREN,
		SIRET:        c.Fiscal.SIRET,
		VATNumber:    c.Fiscal.VATNumber,
		ShareCapital: c.ShareCapital,
		Email:        c.Contact.Email,
		Phone:        c.Contact.Phone,
		Website:      c.Contact.Website,
		IsMain:       c.IsMain,
		LogoKey:      c.LogoKey,
		ArchivedAt:   c.ArchivedAt,
		Version:      c.Version,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
