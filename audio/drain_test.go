package audio

import (
	"errors"
	"testing"
)

func TestDrain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		samples    int
		bufferSize int
		wantChunks int
	}{
		{"stereo default buffer", 2, 5000, 0, 3},
		{"stereo exact", 2, 500, 1000, 1},
		{"mono small", 1, 10, 3, 4},
		{"empty", 2, 0, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newMockSource(8000, tt.channels, tt.samples)
			total, chunks := 0, 0
			err := Drain(src, tt.bufferSize, func(chunk []float32) error {
				total += len(chunk)
				chunks++
				return nil
			})
			if err != nil {
				t.Fatalf("Drain() error = %v", err)
			}
			if total != tt.samples*tt.channels {
				t.Errorf("drained %d samples, want %d", total, tt.samples*tt.channels)
			}
			if chunks != tt.wantChunks {
				t.Errorf("chunks = %d, want %d", chunks, tt.wantChunks)
			}
		})
	}
}

func TestDrain_BufferNotMultipleOfChannels(t *testing.T) {
	t.Parallel()

	err := Drain(newMockSource(8000, 2, 10), 7, func([]float32) error { return nil })
	if !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("Drain() error = %v, want %v", err, ErrInvalidDstSize)
	}
}

func TestDrain_Errors(t *testing.T) {
	t.Parallel()

	readErr := errors.New("disk on fire")
	src := newMockSource(8000, 1, 100)
	src.failAfter, src.failErr = 10, readErr

	err := Drain(src, 10, func([]float32) error { return nil })
	if !errors.Is(err, readErr) {
		t.Errorf("Drain() error = %v, want %v", err, readErr)
	}

	stop := errors.New("stop")
	calls := 0
	err = Drain(newMockSource(8000, 1, 100), 10, func([]float32) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Drain() = %v after %d calls, want %v after 1", err, calls, stop)
	}
}

func TestReadAll16(t *testing.T) {
	t.Parallel()

	src := newMockSource(8000, 2, 150)
	pcm, err := ReadAll16(src, 64)
	if err != nil {
		t.Fatalf("ReadAll16() error = %v", err)
	}
	if len(pcm) != 300 {
		t.Fatalf("len(pcm) = %d, want 300", len(pcm))
	}

	// frame 50: left 0.5, right 0.
	if pcm[100] != 16383 || pcm[101] != 0 {
		t.Errorf("pcm[100:102] = %v, want [16383 0]", pcm[100:102])
	}
	// frame 0, right channel: -0.5.
	if pcm[1] != -16383 {
		t.Errorf("pcm[1] = %d, want -16383", pcm[1])
	}
}

func TestReadAll16_Preallocates(t *testing.T) {
	t.Parallel()

	src := seekableMock{newMockSource(1000, 2, 500)}
	pcm, err := ReadAll16(src, 0)
	if err != nil {
		t.Fatalf("ReadAll16() error = %v", err)
	}
	if len(pcm) != 1000 {
		t.Errorf("len(pcm) = %d, want 1000", len(pcm))
	}
	if cap(pcm) != 1002 {
		t.Errorf("cap(pcm) = %d, want 1002", cap(pcm))
	}
}

func BenchmarkReadAll16(b *testing.B) {
	for b.Loop() {
		_, _ = ReadAll16(newMockSource(44100, 2, 44100), 4096)
	}
}
