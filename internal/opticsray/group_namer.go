package opticsray

import "fmt"

// HitKind tells what a traced ray ended on.
type HitKind uint8

const (
	NoHit HitKind = iota
	LensHit
	ObjectHit
)

// Ordinal returns 1st, 2nd, 3rd, 4th, ..., 11th, 12th, 13th, 21st, ...
func Ordinal(n int) string {
	suffix := "th"
	if m := n % 100; m < 11 || m > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func PrimaryRays() string { return "primary_rays" }
func RefractionRays(depth int) string { return Ordinal(depth) + "_refraction" }
func MissedRays() string { return "missed_rays" }
func CameraInternalRays() string { return "camera_internal_rays" }
func CameraLensIntersection() string { return "camera_lens_intersection" }
func CameraCenter() string { return "camera_center" }
func LensOutlines() string { return "lens_outlines" }
func ScreenOutlines() string { return "screen_outlines" }
func HitPoints() string { return "hit_points" }

// RayGroupName names rays by refraction depth (0 is primary) and what they hit.
func RayGroupName(depth int, kind HitKind, index int) string {
	prefix := PrimaryRays()
	if depth > 0 {
		prefix = RefractionRays(depth)
	}
	switch kind {
	case LensHit:
		return fmt.Sprintf("%s_through_lens_%d", prefix, index)
	case ObjectHit:
		return fmt.Sprintf("%s_at_object_%d", prefix, index)
	}
	return prefix
}

// HitPointGroupName names hit markers by what was hit.
func HitPointGroupName(kind HitKind, index int) string {
	switch kind {
	case LensHit:
		return fmt.Sprintf("hit_points_at_lens_%d", index)
	case ObjectHit:
		return fmt.Sprintf("hit_points_at_object_%d", index)
	}
	return HitPoints()
}
