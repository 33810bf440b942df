package cvec

import (
	"testing"

	"github.com/aclements/go-perfevent/perfbench"

	"github.com/pbasic/pbasic/alloc"
)

func BenchmarkPush(b *testing.B) {
	b.Run("Serial", func(b *testing.B) {
		var v T[uint64]

		perfbench.Open(b)
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; b.Loop(); i++ {
			v.Push(uint64(i))
		}
	})

	b.Run("Reserved", func(b *testing.B) {
		var v T[uint64]
		_ = v.Reserve(b.N)

		perfbench.Open(b)
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			v.Push(uint64(i))
		}
	})

	b.Run("Parallel", func(b *testing.B) {
		var v T[uint64]

		perfbench.Open(b)
		b.ReportAllocs()
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for i := uint64(0); pb.Next(); i++ {
				v.Push(i)
			}
		})
	})

	b.Run("Pool", func(b *testing.B) {
		var v T[uint64]
		v.Init(new(alloc.Pool[uint64]))

		perfbench.Open(b)
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; b.Loop(); i++ {
			v.Push(uint64(i))
			if i&0xffff == 0xffff {
				v.Close()
			}
		}
	})
}

func BenchmarkGet(b *testing.B) {
	var v T[payload]
	for i := range 1 << 16 {
		v.Push(newPayload(uint64(i)))
	}

	perfbench.Open(b)
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for i := 0; pb.Next(); i++ {
			v.Get(i & (1<<16 - 1))
		}
	})
}
