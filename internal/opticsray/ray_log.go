package opticsray

import (
	"fmt"
	"sort"
	"sync"
)

type Category uint8

const (
	Hit        Category = iota // ray ended on a colored object
	Refract                    // ray refracted through a lens
	Miss                       // ray missed everything
	Lost                       // ray exceeded the refraction depth limit
	CameraDead                 // eye camera ray missed its own lens
)

func (c Category) String() string {
	switch c {
	case Hit:
		return "hit"
	case Refract:
		return "refract"
	case Miss:
		return "miss"
	case Lost:
		return "lost"
	case CameraDead:
		return "camera_dead"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

type rayLogKey struct {
	Category Category
	Depth    int
}

type RayLogCache struct {
	mu   sync.Mutex
	rays map[rayLogKey]int
}

var cache = &RayLogCache{
	rays: make(map[rayLogKey]int),
}

// logRays counts n rays of a category at a refraction depth when Debug is set.
func logRays(category Category, depth, n int) {
	if !Debug || n == 0 {
		return
	}
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.rays[rayLogKey{category, depth}] += n
}

func rayCount(category Category, depth int) int {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.rays[rayLogKey{category, depth}]
}

func resetRayLog() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.rays = make(map[rayLogKey]int)
}

func raysStats() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	keys := make([]rayLogKey, 0, len(cache.rays))
	for k := range cache.rays {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Depth != keys[j].Depth {
			return keys[i].Depth < keys[j].Depth
		}
		return keys[i].Category < keys[j].Category
	})
	for _, k := range keys {
		fmt.Printf("Rays %s at depth %d: %d\n", k.Category, k.Depth, cache.rays[k])
	}
}
