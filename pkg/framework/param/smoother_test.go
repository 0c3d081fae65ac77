package param

import (
	"math"
	"testing"
)

func TestSmoother(t *testing.T) {
	t.Run("LinearSmoothing", func(t *testing.T) {
		smoother := NewSmoother(LinearSmoothing, 10)
		smoother.Reset(0.0)
		smoother.SetTarget(1.0)

		for i := 0; i < 10; i++ {
			value := smoother.Next()
			expected := float64(i+1) * 0.1
			if math.Abs(value-expected) > 0.001 {
				t.Errorf("Sample %d: expected %f, got %f", i, expected, value)
			}
		}

		if smoother.Next() != 1.0 {
			t.Error("Should stay at target after reaching it")
		}
		if smoother.IsSmoothing() {
			t.Error("Should not be smoothing after reaching target")
		}
	})

	t.Run("ExponentialSmoothing", func(t *testing.T) {
		smoother := NewSmoother(ExponentialSmoothing, 0.9)
		smoother.Reset(0.0)
		smoother.SetTarget(1.0)

		prev := 0.0
		for i := 0; i < 50; i++ {
			value := smoother.Next()
			if value <= prev {
				t.Error("Value should be increasing")
			}
			if value >= 1.0 {
				t.Error("Should not exceed target")
			}
			prev = value
		}

		for i := 0; i < 200; i++ {
			smoother.Next()
		}
		if smoother.IsSmoothing() {
			t.Error("Should have reached target by now")
		}
	})

	t.Run("Threshold", func(t *testing.T) {
		smoother := NewSmoother(ExponentialSmoothing, 0.9)
		smoother.SetThreshold(0.1)
		smoother.Reset(0.0)
		smoother.SetTarget(0.05)

		if smoother.IsSmoothing() {
			t.Error("Should not smooth when change is below threshold")
		}
	})

	t.Run("Process", func(t *testing.T) {
		smoother := NewSmoother(LinearSmoothing, 5)
		smoother.Reset(0.0)
		smoother.SetTarget(1.0)

		buffer := []float32{1.0, 1.0, 1.0, 1.0, 1.0}
		smoother.Process(buffer)

		expected := []float32{0.2, 0.4, 0.6, 0.8, 1.0}
		for i, v := range buffer {
			if math.Abs(float64(v-expected[i])) > 0.001 {
				t.Errorf("Sample %d: expected %f, got %f", i, expected[i], v)
			}
		}
	})

	t.Run("SetTime", func(t *testing.T) {
		linear := NewSmoother(LinearSmoothing, 1)
		linear.SetTime(48000, 20)
		if linear.rate != 960 {
			t.Errorf("Expected rate 960, got %f", linear.rate)
		}

		exp := NewSmoother(ExponentialSmoothing, 0)
		exp.SetTime(48000, 20)
		if exp.rate <= 0.99 || exp.rate >= 1 {
			t.Errorf("Expected coefficient just below 1, got %f", exp.rate)
		}
	})
}

func TestSmoothedFollowsParameter(t *testing.T) {
	p := New(1, "Level").Range(0, 1).Default(0.5).Build()
	s := NewSmoothed(p, LinearSmoothing, 4)

	if s.Next() != 0.5 {
		t.Fatal("Should start at the parameter value")
	}

	p.SetValue(1.0)
	want := []float64{0.625, 0.75, 0.875, 1.0, 1.0}
	for i, w := range want {
		if got := s.Next(); math.Abs(got-w) > 1e-9 {
			t.Errorf("Sample %d: expected %f, got %f", i, w, got)
		}
	}

	p.SetValue(0)
	s.Snap()
	if s.Current() != 0 || s.IsSmoothing() {
		t.Error("Snap should jump to the parameter value")
	}
}

func TestSmootherDoesNotAllocate(t *testing.T) {
	p := New(1, "Level").Build()
	s := NewSmoothed(p, ExponentialSmoothing, 0.99)
	buf := make([]float32, 256)
	allocs := testing.AllocsPerRun(50, func() {
		p.SetValue(1 - p.Value())
		s.Process(buf)
	})
	if allocs != 0 {
		t.Errorf("Process allocated %v times", allocs)
	}
}

func BenchmarkSmoother(b *testing.B) {
	b.Run("LinearNext", func(b *testing.B) {
		smoother := NewSmoother(LinearSmoothing, 100)
		smoother.SetTarget(1.0)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = smoother.Next()
		}
	})

	b.Run("ProcessBuffer", func(b *testing.B) {
		smoother := NewSmoother(ExponentialSmoothing, 0.99)
		smoother.SetTarget(1.0)
		buffer := make([]float32, 512)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			smoother.Process(buffer)
		}
	})
}
