package cvec_test

import (
	"fmt"
	"sync"

	"github.com/pbasic/pbasic/cvec"
)

func Example() {
	var v cvec.T[string]
	defer v.Close()

	for _, s := range []string{"a", "b", "c", "d", "e"} {
		v.Push(s)
	}
	fmt.Println(v.Len(), v.Cap())

	_ = v.Reserve(20)
	fmt.Println(v.Len(), v.Cap())

	_ = v.Resize(3)
	fmt.Println(v.AppendTo(nil))

	v.ShrinkToFit()
	fmt.Println(v.Len(), v.Cap())

	v.Clear()
	fmt.Println(v.Len(), v.Cap(), v.Empty())

	// Output:
	// 5 5
	// 5 22
	// [a b c]
	// 3 3
	// 0 3 true
}

func ExampleT_Emplace() {
	var (
		v  cvec.T[int]
		wg sync.WaitGroup
	)

	for g := range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := g * 3; i < g*3+3; i++ {
				v.Emplace(func(x *int) { *x = i })
			}
		}()
	}
	wg.Wait()

	sum := 0
	v.Range(func(_ int, x int) bool { sum += x; return true })
	fmt.Println(v.Len(), sum)

	// Output:
	// 9 36
}
