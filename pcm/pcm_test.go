// SPDX-License-Identifier: EPL-2.0

package pcm

import "testing"

func TestDownmixFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		left, right int16
		want        int16
	}{
		{"both zero", 0, 0, 0},
		{"simple average", 100, 200, 150},
		{"negative pair", -1000, -3000, -2000},
		{"full scale opposites", 32767, -32768, -1},
		{"both max", 32767, 32767, 32767},
		{"both min", -32768, -32768, -32768},
		{"odd sum rounds toward minus infinity", 1, 2, 1},
		{"negative odd sum rounds toward minus infinity", -1, -2, -2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DownmixFrame(tt.left, tt.right); got != tt.want {
				t.Errorf("DownmixFrame(%d, %d) = %d, expected %d",
					tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestDownmixStereo(t *testing.T) {
	t.Parallel()

	src := []int16{100, 200, 32767, -32768, -10, -20}
	dst := make([]int16, 3)

	n := DownmixStereo(dst, src)
	if n != 3 {
		t.Fatalf("expected 3 frames, got %d", n)
	}
	want := []int16{150, -1, -15}
	for i, v := range want {
		if dst[i] != v {
			t.Errorf("frame %d: expected %d, got %d", i, v, dst[i])
		}
	}
}

func TestDownmixStereo_IgnoresTrailingSample(t *testing.T) {
	t.Parallel()

	src := []int16{10, 20, 30}
	dst := make([]int16, 4)
	if n := DownmixStereo(dst, src); n != 1 {
		t.Fatalf("expected 1 frame from 3 samples, got %d", n)
	}
	if dst[0] != 15 {
		t.Errorf("expected 15, got %d", dst[0])
	}
}

func TestDownmixStereo_BoundedByDst(t *testing.T) {
	t.Parallel()

	src := []int16{1, 1, 2, 2, 3, 3}
	dst := make([]int16, 2)
	if n := DownmixStereo(dst, src); n != 2 {
		t.Fatalf("expected 2 frames, got %d", n)
	}
}

func TestDownmixStereo_InPlace(t *testing.T) {
	t.Parallel()

	buf := []int16{100, 200, -10, -20}
	n := DownmixStereo(buf, buf)
	if n != 2 {
		t.Fatalf("expected 2 frames, got %d", n)
	}
	if buf[0] != 150 || buf[1] != -15 {
		t.Errorf("in-place downmix: got %d, %d", buf[0], buf[1])
	}
}

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{0.5, 16383},
		{-0.5, -16383},
		{2.5, 32767},
		{-2.5, -32767},
	}
	for _, tt := range tests {
		tt := tt
		if got := Float32ToInt16(tt.in); got != tt.want {
			t.Errorf("Float32ToInt16(%v) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestFloat32ToInt16Buf(t *testing.T) {
	t.Parallel()

	src := []float32{0, 0.5, -1, 1}
	dst := make([]int16, 3)
	if n := Float32ToInt16Buf(dst, src); n != 3 {
		t.Fatalf("expected 3 samples, got %d", n)
	}
	want := []int16{0, 16383, -32767}
	for i, v := range want {
		if dst[i] != v {
			t.Errorf("sample %d: expected %d, got %d", i, v, dst[i])
		}
	}
}

func BenchmarkDownmixStereo(b *testing.B) {
	src := make([]int16, 2048)
	for i := range src {
		src[i] = int16(i)
	}
	dst := make([]int16, 1024)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		DownmixStereo(dst, src)
	}
}
