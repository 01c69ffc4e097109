package opticsray

import "testing"

func TestRayLogCache(t *testing.T) {
	old := Debug
	defer func() { Debug = old }()

	resetRayLog()
	Debug = false
	logRays(Hit, 0, 5)
	if rayCount(Hit, 0) != 0 {
		t.Fatal("counted with Debug off")
	}
	Debug = true
	logRays(Hit, 0, 5)
	logRays(Hit, 0, 2)
	logRays(Lost, 3, 1)
	if rayCount(Hit, 0) != 7 || rayCount(Lost, 3) != 1 || rayCount(Miss, 0) != 0 {
		t.Fatalf("unexpected counts: %+v", cache.rays)
	}
	resetRayLog()
	if rayCount(Hit, 0) != 0 {
		t.Fatal("reset did not clear")
	}
	if Category(9).String() != "category(9)" || CameraDead.String() != "camera_dead" {
		t.Fatal("category names wrong")
	}
}
