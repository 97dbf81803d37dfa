package common

const (
	BitVersion     = "0.1.0"
	ModuleFileName = "bit-mod.toml"
	SrcFileExt     = ".json"
)

// DefaultTimeFormat is the strftime pattern used for report timestamps when
// the module file does not specify one.
const DefaultTimeFormat = "%Y-%m-%d %H:%M:%S"
