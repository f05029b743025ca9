package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateTemplateKind checks that kind is one of the supported template kinds.
func ValidateTemplateKind(kind TemplateKind) error {
	switch kind {
	case KindTeX, KindHTML:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidTemplateKind, kind)
}

// templateFile returns the relative file name for a validated template.
func templateFile(name string, kind TemplateKind) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	if err := ValidateTemplateKind(kind); err != nil {
		return "", err
	}
	return name + "." + string(kind), nil
}
