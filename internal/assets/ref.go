// Package assets models the asset references a level set pulls in and
// computes the transitive closure over background-level edges.
package assets

// Kind classifies an asset reference.
type Kind string

const (
	KindImage    Kind = "image"
	KindAudio    Kind = "audio"
	KindLevel    Kind = "level"
	KindMaterial Kind = "material"
	// KindMaterialImage tags the texture lookup of a material, which is
	// checked independently of the material file itself.
	KindMaterialImage Kind = "material-image"
	// KindMap tags a level's companion .map geometry file.
	KindMap   Kind = "map"
	KindModel Kind = "model"
)

// Ref is one logical asset reference. Parent names the asset that produced
// the reference and exists purely for diagnostics; resolution and cycle
// detection never follow it. Two refs with equal kind and path are the same
// asset regardless of parent.
type Ref struct {
	Kind   Kind
	Path   string
	Parent string // empty for the set manifest's own references
}

// list is an insertion-ordered, path-deduplicated ref collection. The first
// insertion of a path wins, retaining its parent.
type list struct {
	refs []Ref
	seen map[string]struct{}
}

func (l *list) add(r Ref) bool {
	if r.Path == "" {
		return false
	}
	if l.seen == nil {
		l.seen = make(map[string]struct{}, 8)
	}
	if _, dup := l.seen[r.Path]; dup {
		return false
	}
	l.seen[r.Path] = struct{}{}
	l.refs = append(l.refs, r)
	return true
}

func (l *list) merge(o list) {
	for _, r := range o.refs {
		l.add(r)
	}
}

// Bundle groups the four direct reference collections a level or set file
// yields. Collections preserve insertion order and deduplicate by path, so
// merging is an idempotent union.
type Bundle struct {
	images    list
	audio     list
	levels    list
	materials list
}

func NewBundle() *Bundle { return &Bundle{} }

func (b *Bundle) AddImage(path, parent string) {
	b.images.add(Ref{Kind: KindImage, Path: path, Parent: parent})
}

func (b *Bundle) AddAudio(path, parent string) {
	b.audio.add(Ref{Kind: KindAudio, Path: path, Parent: parent})
}

func (b *Bundle) AddLevel(path, parent string) {
	b.levels.add(Ref{Kind: KindLevel, Path: path, Parent: parent})
}

func (b *Bundle) AddMaterial(name, parent string) {
	b.materials.add(Ref{Kind: KindMaterial, Path: name, Parent: parent})
}

// Merge unions o into b. Already-present paths keep their first parent.
func (b *Bundle) Merge(o *Bundle) {
	if o == nil {
		return
	}
	b.images.merge(o.images)
	b.audio.merge(o.audio)
	b.levels.merge(o.levels)
	b.materials.merge(o.materials)
}

// Images returns the image refs in insertion order.
func (b *Bundle) Images() []Ref { return b.images.refs }

// Audio returns the audio refs in insertion order.
func (b *Bundle) Audio() []Ref { return b.audio.refs }

// Levels returns the level refs in insertion order.
func (b *Bundle) Levels() []Ref { return b.levels.refs }

// Materials returns the material refs in insertion order.
func (b *Bundle) Materials() []Ref { return b.materials.refs }

// Len reports the total reference count across all collections.
func (b *Bundle) Len() int {
	return len(b.images.refs) + len(b.audio.refs) + len(b.levels.refs) + len(b.materials.refs)
}
