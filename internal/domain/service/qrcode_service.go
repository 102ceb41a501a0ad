package service

// QRCodeService defines the interface for QR code generation and parsing.
type QRCodeService interface {
	// GenerateShopQR generates a PNG QR code that resolves to a shop URL.
	GenerateShopQR(shopID uint, shopURL string) ([]byte, error)

	// ParseShopQR parses QR code data and returns the encoded shop ID.
	ParseShopQR(qrData string) (uint, error)
}
