package validation

import (
	"maps"
	"mime/multipart"
)

// Overlay holds temporary input used to steer message selection: fake
// field values (e.g. the other field of required_if) and file markers for
// fields that should classify as files without an actual upload.
type Overlay struct {
	Data  map[string]string
	Files []string
}

// Empty reports whether o changes nothing.
func (o Overlay) Empty() bool { return len(o.Data) == 0 && len(o.Files) == 0 }

// WithOverlay installs o over the validator's data and files, runs fn and
// restores the previous state, whether fn returns an error or panics.
func (v *Validator) WithOverlay(o Overlay, fn func() error) error {
	if o.Empty() {
		return fn()
	}

	prevData, prevFiles := v.data, v.files
	defer func() { v.data, v.files = prevData, prevFiles }()

	data := maps.Clone(prevData)
	if data == nil {
		data = make(map[string]string, len(o.Data))
	}
	maps.Copy(data, o.Data)

	files := maps.Clone(prevFiles)
	if files == nil {
		files = make(map[string]*multipart.FileHeader, len(o.Files))
	}
	for _, f := range o.Files {
		if _, ok := files[f]; !ok {
			files[f] = nil
		}
	}

	v.data, v.files = data, files
	return fn()
}
