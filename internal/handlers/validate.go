package handlers

import (
	"strings"
	"unicode/utf8"

	"carlot/internal/models"
)

// Validation limits, matching the column sizes of the catalog schema.
const (
	maxIDLen      = 64
	maxNameLen    = 255
	maxColorLen   = 64
	maxPlateLen   = 32
	maxImages     = 30
	minModelYear  = 1900
	maxModelYear  = 2100
	maxPrice      = 9_999_999_999.99
	maxCapacityCC = 20_000
	maxMileageKm  = 5_000_000
)

// carInput is the body of an admin car create request.
type carInput struct {
	BrandID              string   `json:"brandId"`
	TypeID               string   `json:"typeId"`
	CategoryID           *string  `json:"categoryId"`
	Model                string   `json:"model"`
	SubModel             string   `json:"subModel"`
	Transmission         string   `json:"transmission"`
	Color                string   `json:"color"`
	ModelYear            int      `json:"modelYear"`
	EngineType           string   `json:"engineType"`
	EngineCapacity       int      `json:"engineCapacity"`
	Mileage              *int     `json:"mileage"`
	Price                float64  `json:"price"`
	Images               []string `json:"images"`
	PreviousLicensePlate *string  `json:"previousLicensePlate"`
	CurrentLicensePlate  *string  `json:"currentLicensePlate"`
	IsActive             *bool    `json:"isActive"`
	SalesType            string   `json:"salesType"`
}

// referenceInput is the body of an admin brand, type or category upsert.
type referenceInput struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// validateCar checks a create request and returns the first error found.
func validateCar(in carInput) string {
	if msg := validateID("brandId", in.BrandID); msg != "" {
		return msg
	}
	if msg := validateID("typeId", in.TypeID); msg != "" {
		return msg
	}
	if in.CategoryID != nil {
		if msg := validateID("categoryId", *in.CategoryID); msg != "" {
			return msg
		}
	}
	if strings.TrimSpace(in.Model) == "" {
		return "model is required"
	}
	if utf8.RuneCountInString(in.Model) > maxNameLen || utf8.RuneCountInString(in.SubModel) > maxNameLen {
		return "model and subModel are limited to 255 characters"
	}
	if !models.Transmission(in.Transmission).Valid() {
		return "transmission must be AUTOMATIC or MANUAL"
	}
	if !models.EngineType(in.EngineType).Valid() {
		return "engineType must be one of DIESEL, GASOLINE, ELECTRIC, HYBRID, LPG, CNG"
	}
	if in.SalesType != "" && !models.SalesType(in.SalesType).Valid() {
		return "salesType must be OWNER or CONSIGNMENT"
	}
	if strings.TrimSpace(in.Color) == "" || utf8.RuneCountInString(in.Color) > maxColorLen {
		return "color is required and limited to 64 characters"
	}
	if in.ModelYear < minModelYear || in.ModelYear > maxModelYear {
		return "modelYear is out of range"
	}
	if in.EngineCapacity < 0 || in.EngineCapacity > maxCapacityCC {
		return "engineCapacity is out of range"
	}
	if in.Mileage != nil && (*in.Mileage < 0 || *in.Mileage > maxMileageKm) {
		return "mileage is out of range"
	}
	if in.Price < 0 || in.Price > maxPrice {
		return "price is out of range"
	}
	if len(in.Images) > maxImages {
		return "too many images (max 30)"
	}
	for _, img := range in.Images {
		if strings.TrimSpace(img) == "" {
			return "images must not contain empty keys"
		}
	}
	for _, plate := range []*string{in.PreviousLicensePlate, in.CurrentLicensePlate} {
		if plate != nil && utf8.RuneCountInString(*plate) > maxPlateLen {
			return "license plates are limited to 32 characters"
		}
	}
	return ""
}

// validateReference checks a reference upsert and returns the first error
// found.
func validateReference(id string, in referenceInput) string {
	if msg := validateID("id", id); msg != "" {
		return msg
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is limited to 255 characters"
	}
	return ""
}

// validateID checks a reference code such as HONDA or SEDAN.
func validateID(field, id string) string {
	if strings.TrimSpace(id) == "" {
		return field + " is required"
	}
	if len(id) > maxIDLen {
		return field + " is limited to 64 characters"
	}
	if strings.ContainsAny(id, " /\t\n") {
		return field + " must not contain spaces or slashes"
	}
	return ""
}
