package profiles

import (
	_ "embed"
	"sync"

	"resume-site/resume/model"
)

//go:embed data/default.yaml
var defaultYAML []byte

var loadDefault = sync.OnceValues(func() (model.ResumeData, error) {
	return Decode(defaultYAML, "default.yaml")
})

// Default returns the résumé compiled into the binary.
func Default() (model.ResumeData, error) {
	return loadDefault()
}

// NewEmbedded serves the compiled-in résumé.
func NewEmbedded() (*Static, error) {
	data, err := Default()
	if err != nil {
		return nil, err
	}
	return &Static{data: data}, nil
}
