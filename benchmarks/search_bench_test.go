package benchmarks

import (
	"context"
	"fmt"
	"testing"

	tm "github.com/comalice/turingmachines"
)

func BenchmarkBuildUnary(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := GenUnary(n)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := m.Build(context.Background()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBuildGrid(b *testing.B) {
	for _, size := range []int{2, 3} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			m := GenGrid(size)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := m.Build(context.Background()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkMaterializeDeep measures replaying a long soft chain.
func BenchmarkMaterializeDeep(b *testing.B) {
	const depth = 500
	m := GenUnary(depth)
	m.ReinitTapes()
	e := tm.NewExplorer(m)
	id := e.Seed()[0]
	for k := 0; k < depth; k++ {
		id = e.Explore(id)[0]
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Materialize(id)
	}
}

func BenchmarkTick(b *testing.B) {
	m := GenUnary(1000)
	if err := m.Build(context.Background()); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fired, err := m.Tick()
		if err != nil {
			b.Fatal(err)
		}
		if !fired {
			b.StopTimer()
			if err := m.LoadFirstConfiguration(); err != nil {
				b.Fatal(err)
			}
			b.StartTimer()
		}
	}
}

func BenchmarkIsDeterministic(b *testing.B) {
	m := GenGrid(3)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.IsDeterministic()
	}
}
