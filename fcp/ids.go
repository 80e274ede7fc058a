package fcp

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrUnresolvablePath reports an image path that cannot be turned into a
// file URL for a media reference.
var ErrUnresolvablePath = errors.New("cannot resolve image path to file URL")

var windowsDriveRegex = regexp.MustCompile(`^[A-Za-z]:`)

// AssetRegistry assigns resource ids to images in first-seen order as
// "r1", "r2", and so on; "r0" is reserved for the format descriptor.
type AssetRegistry struct {
	ids       map[string]string
	assets    []Asset
	nextIndex int
}

// NewAssetRegistry creates an empty registry.
func NewAssetRegistry() *AssetRegistry {
	return &AssetRegistry{
		ids:       make(map[string]string),
		nextIndex: 1,
	}
}

// Register returns the resource id for an image path, creating a new
// asset resource on first sight. Registration fails if the path cannot be
// converted to a file URL.
func (r *AssetRegistry) Register(imagePath string) (string, error) {
	if id, exists := r.ids[imagePath]; exists {
		return id, nil
	}

	fileURL, err := fileURLForPath(imagePath)
	if err != nil {
		return "", err
	}

	id := fmt.Sprintf("r%d", r.nextIndex)
	r.nextIndex++

	r.ids[imagePath] = id
	r.assets = append(r.assets, Asset{
		ID:       id,
		Name:     imageStem(imagePath),
		Start:    "0/1s",
		Duration: "0/1s",
		HasVideo: "1",
		MediaRep: MediaRep{
			Kind: "original-media",
			Src:  fileURL,
		},
	})

	return id, nil
}

// Lookup returns the id previously assigned to an image path.
func (r *AssetRegistry) Lookup(imagePath string) (string, bool) {
	id, exists := r.ids[imagePath]
	return id, exists
}

// Assets returns the registered asset resources in assignment order.
func (r *AssetRegistry) Assets() []Asset {
	return r.assets
}

// fileURLForPath converts a local image path into a file URL. Windows
// drive-letter paths get the file://localhost/ form with forward slashes.
func fileURLForPath(imagePath string) (string, error) {
	if strings.TrimSpace(imagePath) == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnresolvablePath)
	}

	if windowsDriveRegex.MatchString(imagePath) {
		return "file://localhost/" + strings.ReplaceAll(imagePath, `\`, "/"), nil
	}

	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnresolvablePath, imagePath, err)
	}
	return "file://" + filepath.ToSlash(absPath), nil
}

// imageStem returns the file name without its extension.
func imageStem(imagePath string) string {
	base := filepath.Base(strings.ReplaceAll(imagePath, `\`, "/"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
