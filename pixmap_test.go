package mandel

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestNewPixmap(t *testing.T) {
	p := NewPixmap(4, 3)
	if p.Width() != 4 || p.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", p.Width(), p.Height())
	}
	if len(p.Data()) != 4*3*4 {
		t.Fatalf("len(Data) = %d", len(p.Data()))
	}
	if got := p.GetPixel(2, 2); got != Black {
		t.Errorf("new pixmap pixel = %+v, want black", got)
	}
	if a := p.Data()[3]; a != 255 {
		t.Errorf("alpha = %d, want 255", a)
	}
}

func TestNewPixmap_Negative(t *testing.T) {
	p := NewPixmap(-2, 5)
	if p.Width() != 0 || len(p.Data()) != 0 {
		t.Errorf("NewPixmap(-2, 5) = %dx%d, %d bytes", p.Width(), p.Height(), len(p.Data()))
	}
}

func TestPixmap_SetGetPixel(t *testing.T) {
	p := NewPixmap(3, 3)
	p.SetPixel(1, 2, White)
	p.SetPixel(-1, 0, White) // ignored
	p.SetPixel(3, 0, White)  // ignored

	if got := p.GetPixel(1, 2); got != White {
		t.Errorf("GetPixel(1,2) = %+v, want white", got)
	}
	if got := p.GetPixel(5, 5); got != Black {
		t.Errorf("GetPixel out of range = %+v, want black", got)
	}

	white := 0
	for i := 0; i < len(p.Data()); i += 4 {
		if p.Data()[i] == 255 {
			white++
		}
	}
	if white != 1 {
		t.Errorf("%d white pixels, want 1", white)
	}
}

func TestPixmap_ColumnsClipsWrites(t *testing.T) {
	p := NewPixmap(6, 2)
	v := p.Columns(2, 4)

	for x := range 6 {
		for y := range 2 {
			v.Set(x, y, White)
		}
	}

	for x := range 6 {
		want := Black
		if x >= 2 && x < 4 {
			want = White
		}
		for y := range 2 {
			if got := p.GetPixel(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}

	x0, x1, h := p.Columns(-5, 99).Bounds()
	if x0 != 0 || x1 != 6 || h != 2 {
		t.Errorf("clipped Bounds() = %d, %d, %d", x0, x1, h)
	}
}

func TestPixmap_ColumnsConcurrent(t *testing.T) {
	p := NewPixmap(64, 32)
	colors := []RGB{White, Red, Blue, {0, 1, 0}}

	var wg sync.WaitGroup
	for i, c := range colors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := p.Columns(i*16, (i+1)*16)
			for x := i * 16; x < (i+1)*16; x++ {
				for y := range 32 {
					v.Set(x, y, c)
				}
			}
		}()
	}
	wg.Wait()

	for i, c := range colors {
		want := NewPixmap(1, 1)
		want.SetPixel(0, 0, c)
		if got := p.GetPixel(i*16+7, 9); got != want.GetPixel(0, 0) {
			t.Errorf("strip %d = %+v, want %+v", i, got, c)
		}
	}
}

func TestPixmap_Image(t *testing.T) {
	p := NewPixmap(2, 2)
	p.SetPixel(1, 0, White)

	img := p.ToImage()
	if img.Bounds() != p.Bounds() {
		t.Errorf("Bounds() = %v, want %v", img.Bounds(), p.Bounds())
	}
	if got := color.NRGBAModel.Convert(p.At(1, 0)).(color.NRGBA); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("At(1,0) = %v", got)
	}
}

func TestPixmap_SavePNG(t *testing.T) {
	p := NewPixmap(5, 4)
	p.SetPixel(4, 3, Red)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := p.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded size = %v", img.Bounds())
	}
	r, _, _, _ := img.At(4, 3).RGBA()
	if r>>8 != 255 {
		t.Errorf("decoded red = %d, want 255", r>>8)
	}
}
