package standin_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/standin"
	"pgregory.net/rapid"
)

type Inventory struct{}

func (*Inventory) Count(sku string) (int, error) { return len(sku), nil }

func (*Inventory) Reserve(sku string, qty int, token *string) bool {
	*token = fmt.Sprintf("%s-%d", sku, qty)

	return true
}

const inventorySource = `package shop

type Inventory struct{}

func (*Inventory) Count(sku string) (int, error) { return 0, nil }

func (*Inventory) Reserve(sku string, qty int, token *string) bool { return true }
`

var errOutOfStock = errors.New("out of stock")

// TestForTest_SameT_ReturnsSameMock verifies calls with the same t and name share a mock.
func TestForTest_SameT_ReturnsSameMock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock1 := standin.ForTest(t, "inventory", newInventoryMock)
	mock2 := standin.ForTest(t, "inventory", newInventoryMock)

	g.Expect(mock1).To(BeIdenticalTo(mock2), "same t should return same Mock")
}

// TestForTest_DifferentT_ReturnsDifferentMock verifies different tests get different mocks.
func TestForTest_DifferentT_ReturnsDifferentMock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var mock1, mock2 *standin.Mock

	t.Run("subtest1", func(t *testing.T) {
		mock1 = standin.ForTest(t, "inventory", newInventoryMock)
	})

	t.Run("subtest2", func(t *testing.T) {
		mock2 = standin.ForTest(t, "inventory", newInventoryMock)
	})

	g.Expect(mock1).NotTo(BeIdenticalTo(mock2), "different t should return different Mock")
}

// TestForTest_ConcurrentAccess_Rapid verifies the registry is safe for
// concurrent access with randomized goroutine counts.
func TestForTest_ConcurrentAccess_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 50).Draw(rt, "numGoroutines")
		name := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "name")
		results := make([]*standin.Mock, numGoroutines)

		var wg sync.WaitGroup

		wg.Add(numGoroutines)

		for i := range numGoroutines {
			go func(idx int) {
				defer wg.Done()

				results[idx] = standin.ForTest(t, name, newInventoryMock)
			}(i)
		}

		wg.Wait()

		for i := 1; i < numGoroutines; i++ {
			if results[i] != results[0] {
				rt.Fatalf("goroutine %d got different Mock", i)
			}
		}
	})
}

// TestParseParams_DrivesConditions verifies names parsed from source address parameters.
func TestParseParams_DrivesConditions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table, err := standin.ParseParams(inventorySource, "Inventory")
	g.Expect(err).NotTo(HaveOccurred())

	mock := standin.New(&Inventory{}, standin.WithParamTable(table))
	mock.For("Reserve").IsEqualTo("sku", "gone").ReturnsNil()
	mock.For("Reserve").IsEqualTo("sku", "a1").IsEqualTo("qty", 2).PassesOut("token", "tok").Returns(true)

	token := ""
	g.Expect(mock.Invoke("Reserve", "a1", 2, &token)).To(Equal(true))
	g.Expect(token).To(Equal("tok"))
}

// TestParseParamsFile verifies parameter names can be read from a file.
func TestParseParamsFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "inventory.go")
	g.Expect(os.WriteFile(path, []byte(inventorySource), 0o600)).To(Succeed())

	table, err := standin.ParseParamsFile(path, "Inventory")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(table).To(HaveKeyWithValue("Count", []string{"sku"}))

	_, err = standin.ParseParams(inventorySource, "Warehouse")
	g.Expect(err).To(MatchError(standin.ErrTypeNotFound))
}

// TestResult verifies results narrow to the wanted type.
func TestResult(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := newInventoryMock()
	mock.For("Count").IsEqualTo("sku", "none").Fails(errOutOfStock)
	mock.For("Count").Returns(int64(9))

	count, err := standin.Result[int](mock.Invoke("Count", "abc"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(count).To(Equal(9))

	_, err = standin.Result[int](mock.Invoke("Count", "none"))
	g.Expect(err).To(MatchError(errOutOfStock))

	_, err = standin.Result[[]string](mock.Invoke("Count", "abc"))
	g.Expect(err).To(MatchError(standin.ErrBadArguments))

	empty, err := standin.Result[string](nil, nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(empty).To(BeEmpty())
}

// TestGetAs verifies properties read back converted, and missing ones fail.
func TestGetAs(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := newInventoryMock()
	mock.Set("Warehouse", "north")
	mock.Set("Capacity", "250")

	g.Expect(standin.GetAs[string](mock, "warehouse")).To(Equal("north"))
	g.Expect(standin.GetAs[int](mock, "capacity")).To(Equal(250))

	_, err := standin.GetAs[int](mock, "shelves")
	g.Expect(err).To(MatchError(standin.ErrNotFound))
}

// TestMustInvoke_PassesValues verifies successful calls hand back their value.
func TestMustInvoke_PassesValues(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := standin.New(&Inventory{}, standin.WithoutSeeding())

	g.Expect(standin.MustInvoke(t, mock, "Count", "abcd")).To(Equal(4))
}

// ExampleNew shows conditioned returns, output bindings and faults.
func ExampleNew() {
	mock := standin.New(&Inventory{}, standin.WithParams("Reserve", "sku", "qty", "token"))
	mock.For("Reserve").IsEqualTo("qty", 0).Fails(errOutOfStock)
	mock.For("Reserve").IsEqualTo("sku", "widget").PassesOut("token", "w-1").Returns(true)

	token := ""
	reserved, err := mock.Invoke("Reserve", "widget", 3, &token)
	fmt.Println(reserved, err, token)

	_, err = mock.Invoke("Reserve", "gadget", 0, &token)
	fmt.Println(err)

	// Output:
	// true <nil> w-1
	// out of stock
}

func newInventoryMock() *standin.Mock {
	return standin.New(&Inventory{}, standin.WithParams("Count", "sku"))
}
