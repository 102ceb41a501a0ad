// Package qrcode generates and parses storefront QR codes.
package qrcode

import (
	"encoding/json"
	"fmt"

	"marketplace/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	ShopID uint   `json:"shop_id"`
	URL    string `json:"url"`
	Type   string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateShopQR generates a PNG QR code that resolves to a shop storefront
func (s *qrcodeService) GenerateShopQR(shopID uint, shopURL string) ([]byte, error) {
	// Create QR code data
	data := QRCodeData{
		ShopID: shopID,
		URL:    shopURL,
		Type:   "shop",
	}

	// Convert to JSON
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	// Generate QR code
	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseShopQR parses QR code data and returns the shop ID
func (s *qrcodeService) ParseShopQR(qrData string) (uint, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return 0, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	// Validate type
	if data.Type != "shop" {
		return 0, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	if data.ShopID == 0 {
		return 0, fmt.Errorf("missing shop id in QR code data")
	}

	return data.ShopID, nil
}
