package cache

// Keyer generates cache keys for the three pipeline stages. Keys for the
// same inputs and options must be identical across runs so caches survive
// process restarts.
type Keyer interface {
	// DatasetKey generates a key for a loaded (and possibly synthesized)
	// dataset, derived from the raw input hash and synthesis options.
	DatasetKey(inputHash string, opts DatasetKeyOpts) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DatasetKeyOpts are the options that affect dataset content.
type DatasetKeyOpts struct {
	MinRows int   `json:"min_rows"`
	Seed    int64 `json:"seed"`
}

// LayoutKeyOpts are the options that affect layout geometry.
type LayoutKeyOpts struct {
	VizType string  `json:"viz_type"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Margin  float64 `json:"margin"`
}

// ArtifactKeyOpts are the options that affect rendered output.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Style   string  `json:"style"`
	Palette string  `json:"palette"`
	Scale   float64 `json:"scale"`
	Labels  bool    `json:"labels"`
	Legend  bool    `json:"legend"`
}

// DefaultKeyer hashes stage inputs and options into prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey generates a key for dataset caching.
func (k *DefaultKeyer) DatasetKey(inputHash string, opts DatasetKeyOpts) string {
	return hashKey("dataset", inputHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
