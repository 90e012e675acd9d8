// example declares a small demonstration tree and runs it.
//
// Usage:
//
//	go run ./cmd/example
//	go run ./cmd/example --format json --summary
//	go run ./cmd/example --list
//
// Two tests fail on purpose so every reporter section has something to show.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dkoosis/ut/pkg/assert"
	"github.com/dkoosis/ut/pkg/runner"
	"github.com/dkoosis/ut/pkg/suite"
)

func main() {
	tree := suite.NewTree()
	declare(tree)
	runner.Main(tree)
}

func declare(tree *suite.Tree) {
	tree.Describe("lifecycle", lifecycle)
	tree.Describe("values", values)
}

// lifecycle prints from every hook so captured output shows the order.
func lifecycle(b *suite.Builder) {
	var val string
	count := 0

	b.Before(func() error {
		fmt.Println("before")
		return nil
	})
	b.BeforeEach(func() error {
		fmt.Println("beforeEach")
		count++
		val = "test:" + strconv.Itoa(count)
		return nil
	})
	b.AfterEach(func() error {
		fmt.Println("afterEach")
		return nil
	})
	b.After(func() error {
		fmt.Println("after")
		return nil
	})

	b.It("should do nothing", func() error {
		fmt.Println(val)
		return nil
	})
	b.It("should also do nothing", func() error {
		fmt.Println(val)
		return nil
	})
	b.Stub("should be written later")

	b.Describe("subsuite", func(b *suite.Builder) {
		b.It("should run after the parent's tests", func() error {
			fmt.Println("nested")
			return nil
		})
		b.Describe("subsuite2", func(b *suite.Builder) {
			b.It("should play out", func() error {
				fmt.Println("hi there")
				return nil
			})
		})
	})
	b.Describe("empty", nil)
}

func values(b *suite.Builder) {
	var val string
	count := 0

	b.BeforeAsync(func(done suite.Done) {
		go func() {
			// pause in an asynchronous hook
			time.Sleep(100 * time.Millisecond)
			done()
		}()
	})
	b.BeforeEach(func() error {
		count++
		val = strconv.Itoa(count)
		return nil
	})

	b.It("should check value", func() error {
		fmt.Print(val)
		return assert.Equal(val, "1")
	})
	b.It("should also check value", func() error {
		fmt.Print(val)
		return assert.Equal(val, "3")
	})
	b.ItAsync("should finish asynchronously", func(done suite.Done) {
		go func() {
			done(assert.LessOrEqual(len(val), 1))
		}()
	})

	b.Describe("assertions", func(b *suite.Builder) {
		b.It("should fail with a custom message", func() error {
			return assert.True(1 == 2, "1 does not equal 2")
		})
	})
}
