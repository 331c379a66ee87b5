package output

import (
	"io"
	"os"

	"github.com/mdp/qrterminal/v3"
	"golang.org/x/term"
	"rsc.io/qr"
)

// QRConfig controls how a share renders as a terminal QR code.
type QRConfig struct {
	// Level is the error correction level.
	Level qr.Level
	// QuietZone is the number of blank blocks framing the code.
	QuietZone int
	// HalfBlocks halves the vertical size using half-height glyphs.
	HalfBlocks bool
}

// DefaultQRConfig returns the rendering defaults. Shares get scanned or
// transcribed by hand, so medium error correction is enough.
func DefaultQRConfig() QRConfig {
	return QRConfig{
		Level:      qr.M,
		QuietZone:  1,
		HalfBlocks: true,
	}
}

// CanRenderQR reports whether w is a terminal a QR code can draw on.
func CanRenderQR(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: Fd fits in int on supported platforms
}

// RenderQR draws data as a QR code when w is a terminal and silently
// does nothing otherwise, so piped output never picks up block glyphs.
func RenderQR(w io.Writer, data string, cfg QRConfig) error {
	if !CanRenderQR(w) {
		return nil
	}

	qrterminal.GenerateWithConfig(data, qrterminal.Config{
		Level:          cfg.Level,
		Writer:         w,
		QuietZone:      cfg.QuietZone,
		HalfBlocks:     cfg.HalfBlocks,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
	})
	return nil
}
