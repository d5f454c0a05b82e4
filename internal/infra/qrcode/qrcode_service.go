// Package qrcode renders QR code images for authenticator enrollment.
package qrcode

import (
	"github.com/pkg/errors"
	qrcodelib "github.com/skip2/go-qrcode"

	"bountyhub/config"
	"bountyhub/internal/domain/service"
)

// qrCodeService is a concrete implementation of the QRCodeService interface.
type qrCodeService struct {
	size int
}

// NewQRCodeService is the constructor for qrCodeService.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := 256
	if cfg != nil && cfg.QRCode != nil && cfg.QRCode.Size > 0 {
		size = cfg.QRCode.Size
	}

	return &qrCodeService{size: size}
}

// GeneratePNG encodes the given content as a QR code PNG.
func (s *qrCodeService) GeneratePNG(content string) ([]byte, error) {
	png, err := qrcodelib.Encode(content, qrcodelib.Medium, s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode qr code")
	}

	return png, nil
}
