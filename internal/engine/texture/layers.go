package texture

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// ErrLayerSize is returned when array layers do not share dimensions.
var ErrLayerSize = errors.New("texture: layer dimensions differ")

// LoadFunc returns the raw bytes of a named image.
type LoadFunc func(name string) ([]byte, error)

// LoadLayers reads and decodes every named image on a worker pool.
// The result is index-aligned with names and every layer has the size of
// the first one. Every image is attempted; all failures are returned
// joined, and no layers are returned if any failed.
func LoadLayers(load LoadFunc, names []string, workers int) ([]*image.RGBA, error) {
	if len(names) == 0 {
		return nil, errors.New("texture: no layers requested")
	}
	if workers <= 0 {
		workers = 1
	}

	pool := worker.NewDynamicWorkerPool(workers, len(names), time.Second)
	defer pool.Stop()

	layers := make([]*image.RGBA, len(names))
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		idx, n := i, name
		pool.SubmitTask(worker.Task{
			ID:      idx,
			Payload: n,
			Do: func() (any, error) {
				defer wg.Done()
				data, err := load(n)
				if err != nil {
					errs[idx] = err
					return nil, err
				}
				img, err := Decode(n, data)
				if err != nil {
					errs[idx] = err
					return nil, err
				}
				layers[idx] = img
				return img, nil
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	want := layers[0].Bounds().Size()
	for i, img := range layers[1:] {
		if got := img.Bounds().Size(); got != want {
			return nil, fmt.Errorf("%w: %s is %v, %s is %v", ErrLayerSize, names[i+1], got, names[0], want)
		}
	}
	return layers, nil
}
