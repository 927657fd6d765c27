// Package qr renders ticket payloads as PNG QR codes.
package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrEmptyPayload = errors.New("empty payload")

type Renderer struct {
	size  int
	level qrcode.RecoveryLevel
}

func New(size int) *Renderer {
	return &Renderer{
		size:  size,
		level: qrcode.Medium,
	}
}

func (r *Renderer) Encode(payload string) ([]byte, error) {
	const op = "qr.Encode"

	if payload == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyPayload)
	}

	png, err := qrcode.Encode(payload, r.level, r.size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return png, nil
}
