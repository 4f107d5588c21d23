// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package translation maps internal catalog codes (colors, transmissions,
// engine types, car types, categories) to the Thai display strings shown
// on the storefront. The tables are fixed at build time.
package translation

import "fmt"

// Kind selects which table a code is looked up in.
type Kind string

const (
	Color        Kind = "color"
	Transmission Kind = "transmission"
	EngineType   Kind = "engineType"
	CarType      Kind = "carType"
	CarCategory  Kind = "carCategory"
)

var colors = map[string]string{
	"WHITE":     "ขาว",
	"BLACK":     "ดำ",
	"GRAY":      "เทา",
	"SILVER":    "เงิน",
	"BROWN":     "น้ำตาล",
	"RED":       "แดง",
	"DARK_BLUE": "น้ำเงิน",
	"GOLD":      "ทอง",
	"BLUE":      "ฟ้า",
	"GREEN":     "เขียว",
	"ORANGE":    "ส้ม",
	"YELLOW":    "เหลือง",
	"PURPLE":    "ม่วง",
	"CREAM":     "ครีม",
	"PINK":      "ชมพู",
	"OTHER":     "อื่นๆ",
}

var transmissions = map[string]string{
	"AUTOMATIC": "เกียร์อัตโนมัติ",
	"MANUAL":    "เกียร์ธรรมดา",
}

var engineTypes = map[string]string{
	"DIESEL":   "ดีเซล",
	"GASOLINE": "เบนซิน",
	"ELECTRIC": "ไฟฟ้า",
	"HYBRID":   "ไฮบริด",
	"LPG":      "LPG",
	"CNG":      "CNG",
}

var carTypes = map[string]string{
	"SUV":    "SUV",
	"SEDAN":  "เก๋ง",
	"PICKUP": "กระบะ",
}

var carCategories = map[string]string{
	"NEW": "มาใหม่",
}

var tables = map[Kind]map[string]string{
	Color:        colors,
	Transmission: transmissions,
	EngineType:   engineTypes,
	CarType:      carTypes,
	CarCategory:  carCategories,
}

// Translate returns the display string for raw in the given table, or raw
// itself when the kind or the code is unknown.
func Translate(kind Kind, raw string) string {
	if name, ok := tables[kind][raw]; ok {
		return name
	}
	return raw
}

// Func returns a translator bound to one table.
func Func(kind Kind) func(string) string {
	return func(raw string) string {
		return Translate(kind, raw)
	}
}

// EngineCapacity renders a cubic-capacity value with its unit.
func EngineCapacity(raw string) string {
	return fmt.Sprintf("%s CC", raw)
}
