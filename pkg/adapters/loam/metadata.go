package loam

// TemplateMetadata represents the frontmatter of a template document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type TemplateMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Description string `json:"description" mapstructure:"description"`

	// Root is kept loosely typed; node types and property variants are
	// decoded by domain.DecodeTemplate.
	Root map[string]any `json:"root" mapstructure:"root"`
}
