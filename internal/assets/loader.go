package assets

// TemplateKind selects the template flavor for a document.
type TemplateKind string

// Supported template kinds. The value doubles as the file extension.
const (
	KindTeX  TemplateKind = "tex"
	KindHTML TemplateKind = "html"
)

// DefaultTemplateName is the name of the built-in document templates.
const DefaultTemplateName = "document"

// DefaultStyleName is the name of the built-in MathML page style.
const DefaultStyleName = "mathml"

// AssetLoader defines the contract for loading document templates and styles.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a document template by name and kind.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName or ErrInvalidTemplateKind for bad arguments.
	LoadTemplate(name string, kind TemplateKind) (string, error)
}
