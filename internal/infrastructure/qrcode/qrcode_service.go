package qrcode

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/cultiva/reponedores-api/internal/application/usecase"
)

var _ usecase.QRCodeGenerator = (*Service)(nil)

// Service genera los QR de la credencial del reponedor.
type Service struct {
	size  int
	level qrcode.RecoveryLevel
}

// NewService construye el generador. level es L, M, Q o H; cualquier otro valor usa M.
func NewService(size int, level string) *Service {
	if size <= 0 {
		size = 256
	}
	return &Service{size: size, level: parseLevel(level)}
}

func parseLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// PNG codifica content como imagen PNG cuadrada de s.size píxeles.
func (s *Service) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("contenido del QR vacío")
	}
	qr, err := qrcode.New(content, s.level)
	if err != nil {
		return nil, fmt.Errorf("crear QR: %w", err)
	}
	png, err := qr.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("generar PNG: %w", err)
	}
	return png, nil
}
