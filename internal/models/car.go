// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Transmission is the gearbox kind of a car.
type Transmission string

const (
	TransmissionAutomatic Transmission = "AUTOMATIC"
	TransmissionManual    Transmission = "MANUAL"
)

// EngineType is the fuel or drive kind of a car.
type EngineType string

const (
	EngineTypeDiesel   EngineType = "DIESEL"
	EngineTypeGasoline EngineType = "GASOLINE"
	EngineTypeElectric EngineType = "ELECTRIC"
	EngineTypeHybrid   EngineType = "HYBRID"
	EngineTypeLPG      EngineType = "LPG"
	EngineTypeCNG      EngineType = "CNG"
)

// SalesType records whether the dealership owns the car or sells it on
// consignment.
type SalesType string

const (
	SalesTypeOwner       SalesType = "OWNER"
	SalesTypeConsignment SalesType = "CONSIGNMENT"
)

// Valid reports whether t is a known transmission.
func (t Transmission) Valid() bool {
	return t == TransmissionAutomatic || t == TransmissionManual
}

// Valid reports whether e is a known engine type.
func (e EngineType) Valid() bool {
	switch e {
	case EngineTypeDiesel, EngineTypeGasoline, EngineTypeElectric,
		EngineTypeHybrid, EngineTypeLPG, EngineTypeCNG:
		return true
	}
	return false
}

// Valid reports whether s is a known sales type.
func (s SalesType) Valid() bool {
	return s == SalesTypeOwner || s == SalesTypeConsignment
}

// Car is one vehicle in the catalog. Brand and type are mandatory
// references, category is optional.
type Car struct {
	ID                   uuid.UUID    `json:"id"`
	Slug                 string       `json:"slug"`
	BrandID              string       `json:"brandId"`
	TypeID               string       `json:"typeId"`
	CategoryID           *string      `json:"categoryId"`
	Model                string       `json:"model"`
	SubModel             string       `json:"subModel"`
	Transmission         Transmission `json:"transmission"`
	Color                string       `json:"color"`
	ModelYear            int          `json:"modelYear"`
	EngineType           EngineType   `json:"engineType"`
	EngineCapacity       int          `json:"engineCapacity"`
	Mileage              *int         `json:"mileage"`
	Price                float64      `json:"price"`
	Images               []string     `json:"images"`
	PreviousLicensePlate *string      `json:"previousLicensePlate"`
	CurrentLicensePlate  *string      `json:"currentLicensePlate"`
	IsActive             bool         `json:"isActive"`
	SalesType            SalesType    `json:"salesType"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// CarRow is a car together with the display names of its joined
// reference rows. Names are empty when the reference row was excluded
// from the join (for example soft-deleted under an active-only scope).
type CarRow struct {
	Car
	BrandName    string
	TypeName     string
	CategoryName *string
}

// CarDetail is the public single-car view with resolved reference names.
type CarDetail struct {
	Car
	Brand    string  `json:"brand"`
	Type     string  `json:"type"`
	Category *string `json:"category"`
}

// CarSummary is the list projection of a car. Brand, Type, Category and
// Transmission hold either display strings or raw ids depending on the
// projection the caller asked for.
type CarSummary struct {
	ID                   uuid.UUID `json:"id"`
	Slug                 string    `json:"slug"`
	Brand                string    `json:"brand"`
	Type                 string    `json:"type"`
	Category             *string   `json:"category"`
	Transmission         string    `json:"transmission"`
	Images               []string  `json:"images"`
	Model                string    `json:"model"`
	SubModel             string    `json:"subModel"`
	ModelYear            int       `json:"modelYear"`
	Mileage              *int      `json:"mileage"`
	Price                float64   `json:"price"`
	PreviousLicensePlate *string   `json:"previousLicensePlate"`
	CurrentLicensePlate  *string   `json:"currentLicensePlate"`
	IsActive             bool      `json:"isActive"`
}
