package listengine

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/testutil"
)

// TestConcurrentCreateSameName races several creates of one name.
// Expected: exactly one succeeds, the rest fail with ErrDuplicateName.
func TestConcurrentCreateSameName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const workers = 8
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.engine.Create(ctx, "Widget", "1")
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	}
	assert.Equal(t, 1, succeeded)
	assertSameProducts(t, f.engine.Products(), testutil.StoredProducts(t, f.kv))
}

// TestConcurrentMutationsAndRefresh interleaves local creates with
// refreshes from the store. Nothing written locally may be lost.
func TestConcurrentMutationsAndRefresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const creates = 20

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := range creates {
			_, err := f.engine.Create(ctx, fmt.Sprintf("Product %02d", i), "1")
			assert.NoError(t, err)
		}
	}()

	go func() {
		defer wg.Done()
		for range creates {
			_, _, err := f.engine.Refresh(ctx)
			assert.NoError(t, err)
			_ = f.engine.CurrentPageSlice()
		}
	}()

	wg.Wait()

	require.Len(t, f.engine.Products(), creates)
	assertSameProducts(t, f.engine.Products(), testutil.StoredProducts(t, f.kv))
	testutil.AssertUniqueNames(t, f.engine.Products())
}
