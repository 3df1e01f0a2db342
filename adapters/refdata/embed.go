package refdata

import "embed"

//go:embed data/*.json
var embeddedData embed.FS

// DefaultStore loads the reference dataset shipped inside the binary.
func DefaultStore() (*Store, error) {
	return LoadFS(embeddedData, "data")
}
