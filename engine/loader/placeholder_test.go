package loader

import (
	"testing"
)

func TestGeneratePlaceholders(t *testing.T) {
	textures, err := GeneratePlaceholders(40, 4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(textures) != 40 {
		t.Fatalf("got %d textures, want 40", len(textures))
	}
	for i, tex := range textures {
		if tex.Width != PlaceholderWidth || tex.Height != PlaceholderHeight {
			t.Fatalf("texture %d is %dx%d", i, tex.Width, tex.Height)
		}
		if len(tex.Pixels) != PlaceholderWidth*PlaceholderHeight*4 {
			t.Fatalf("texture %d has %d bytes", i, len(tex.Pixels))
		}
	}

	// corner pixel is background, and the label row has white-ish text
	bg := textures[0].Pixels[:4]
	if bg[0] != 0x11 || bg[1] != 0x11 || bg[2] != 0x11 || bg[3] != 0xff {
		t.Fatalf("background = %v, want #111", bg)
	}
	if !hasBrightPixel(textures[0].Pixels, 100, 125) {
		t.Fatal("no label pixels drawn near the baseline")
	}
}

func TestPlaceholdersDifferByLabel(t *testing.T) {
	textures, err := GeneratePlaceholders(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range textures[0].Pixels {
		if textures[0].Pixels[i] != textures[1].Pixels[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("placeholders 1 and 2 are identical")
	}
}

func TestGeneratePlaceholdersZero(t *testing.T) {
	textures, err := GeneratePlaceholders(0, 1)
	if err != nil || len(textures) != 0 {
		t.Fatalf("got %d textures, err %v", len(textures), err)
	}
}

func TestPlaceholderLabel(t *testing.T) {
	if got := PlaceholderLabel(7); got != "test message 7" {
		t.Fatalf("label = %q", got)
	}
}

func hasBrightPixel(pix []byte, fromRow, toRow int) bool {
	for y := fromRow; y < toRow; y++ {
		for x := 0; x < PlaceholderWidth; x++ {
			o := (y*PlaceholderWidth + x) * 4
			if pix[o] > 0x80 {
				return true
			}
		}
	}
	return false
}
