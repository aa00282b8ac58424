package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"techo/backend/internal/domain"
	"techo/backend/internal/whatsapp"
)

// BuildReceipt renders the working bill as a plain-text print preview plus
// the equivalent ESC/POS byte stream for a local printer bridge.
func (s *Service) BuildReceipt(_ context.Context) (domain.ReceiptResponse, error) {
	working := s.state.Working()
	if len(working.Lines) == 0 {
		return domain.ReceiptResponse{}, fmt.Errorf("%w: add items to print the bill preview", domain.ErrEmptyBill)
	}

	lines := []string{
		"Techo",
		"Powered by Engravz",
		s.clock().UTC().Format("2006-01-02 15:04:05"),
		"------------------------",
	}
	for _, line := range working.Lines {
		lines = append(lines, fmt.Sprintf("%s x%d", line.Name, line.Quantity))
		lines = append(lines, "  "+domain.Currency(line.TotalCents))
	}
	lines = append(lines,
		"------------------------",
		"Total : "+domain.Currency(working.TotalCents),
		"========================",
		"Thank you",
		"",
	)

	escpos := []byte{0x1b, 0x40}
	for _, line := range lines {
		escpos = append(escpos, []byte(line)...)
		escpos = append(escpos, '\n')
	}
	escpos = append(escpos, []byte{0x1d, 0x56, 0x41, 0x10}...)

	return domain.ReceiptResponse{
		PreviewText:  strings.Join(lines, "\n"),
		EscposBase64: base64.StdEncoding.EncodeToString(escpos),
		FileName:     fmt.Sprintf("receipt-%s.bin", working.NextNumber),
	}, nil
}

// ShareLink formats the working bill as a plain-text message and builds the
// wa.me URL for the given recipient number. Pure formatting, no mutation.
func (s *Service) ShareLink(_ context.Context, number string) (domain.ShareLinkResponse, error) {
	working := s.state.Working()
	if len(working.Lines) == 0 {
		return domain.ShareLinkResponse{}, fmt.Errorf("%w: add items to send the bill", domain.ErrEmptyBill)
	}

	recipient := whatsapp.NormalizeNumber(number)
	if recipient == "" {
		return domain.ShareLinkResponse{}, fmt.Errorf("%w: whatsapp number is required", domain.ErrValidation)
	}

	message := whatsapp.Message(working.Lines, working.TotalCents)
	return domain.ShareLinkResponse{
		Number:  recipient,
		Message: message,
		URL:     whatsapp.Link(recipient, message),
	}, nil
}
