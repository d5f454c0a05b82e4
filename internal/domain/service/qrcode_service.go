package service

// QRCodeService defines the interface for rendering QR code images.
type QRCodeService interface {
	// GeneratePNG encodes the given content as a QR code PNG.
	GeneratePNG(content string) ([]byte, error)
}
