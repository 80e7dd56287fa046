package component

// Script drives an entity's local transform from a tengo source. Path is only
// used for diagnostics and cache invalidation.
type Script struct {
	Path   string
	Source []byte
}

// Clone returns a Script with its own copy of the source.
func (s Script) Clone() Script {
	return Script{Path: s.Path, Source: append([]byte(nil), s.Source...)}
}

var ScriptComponent = NewComponent[Script]()
