package assets

import "github.com/parasti/neverball-checker/internal/overlay"

// Material names historically appear both bare and under textures/, and the
// backing image may be either PNG or JPEG. The candidate orders below match
// the game's own lookup preference.

// ResolveMaterialFile returns the logical path backing a material name, or
// false when no candidate resolves.
func ResolveMaterialFile(res *overlay.Resolver, name string) (string, bool) {
	for _, cand := range []string{"textures/" + name, name} {
		if res.Exists(cand) {
			return cand, true
		}
	}
	return "", false
}

// ResolveMaterialImage returns the logical path of a material's texture
// image, or false when no candidate resolves. The lookup is independent of
// ResolveMaterialFile: a material can have a file but no image, and the
// reverse.
func ResolveMaterialImage(res *overlay.Resolver, name string) (string, bool) {
	for _, cand := range []string{
		"textures/" + name + ".png",
		"textures/" + name + ".jpg",
		name + ".png",
		name + ".jpg",
	} {
		if res.Exists(cand) {
			return cand, true
		}
	}
	return "", false
}
