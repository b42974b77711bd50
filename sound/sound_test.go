package sound

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestBurstLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	b := NewBurst(rate, 100*time.Millisecond, 1, 1)

	want := rate.N(100 * time.Millisecond)
	if b.Len() != want {
		t.Fatalf("Len() = %d, want %d", b.Len(), want)
	}

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := b.Stream(buf)
		if !ok {
			break
		}
		total += n
	}
	if total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}

	if n, ok := b.Stream(buf); ok || n != 0 {
		t.Errorf("Stream after drain = (%d, %v), want (0, false)", n, ok)
	}
}

func TestBurstSamplesInRange(t *testing.T) {
	b := NewBurst(beep.SampleRate(22050), 50*time.Millisecond, 1, 7)
	buf := make([][2]float64, b.Len())
	n, _ := b.Stream(buf)
	for i := 0; i < n; i++ {
		if math.Abs(buf[i][0]) > 1 || buf[i][0] != buf[i][1] {
			t.Fatalf("sample %d = %v, want mono value in [-1, 1]", i, buf[i])
		}
	}
	if b.Err() != nil {
		t.Errorf("Err() = %v, want nil", b.Err())
	}
}

func TestBurstDecays(t *testing.T) {
	b := NewBurst(beep.SampleRate(44100), 200*time.Millisecond, 1, 3)
	buf := make([][2]float64, b.Len())
	n, _ := b.Stream(buf)

	energy := func(from, to int) float64 {
		var sum float64
		for i := from; i < to; i++ {
			sum += buf[i][0] * buf[i][0]
		}
		return sum / float64(to-from)
	}
	head := energy(0, n/10)
	tail := energy(n-n/10, n)
	if tail >= head {
		t.Errorf("tail energy %g >= head energy %g, want decay", tail, head)
	}
}

func TestBurstZeroVolumeIsSilent(t *testing.T) {
	b := NewBurst(beep.SampleRate(8000), 10*time.Millisecond, 0, 5)
	buf := make([][2]float64, b.Len())
	n, _ := b.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 {
			t.Fatalf("sample %d = %g, want 0", i, buf[i][0])
		}
	}
}
