package cmdOpts

type MainOpts struct {
	ColorAlways  bool
	ConfigValues map[string]string
}

type AliasesOpts struct {
	DisplayJson bool
}

type LinkOpts struct {
	LinkPath   string
	TargetPath string
	Host       string
	DirMode    string
	Verbose    bool
}

type ApplyOpts struct {
	Manifest      string
	Host          string
	Dry           bool
	AlwaysConfirm bool
	Verbose       bool
}

type StatusOpts struct {
	Manifest    string
	Query       string
	Host        string
	DisplayJson bool
}
