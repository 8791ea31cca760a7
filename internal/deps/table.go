package deps

// Requirement is a single pip requirement line: a package name with an
// optional minimum version constraint.
type Requirement struct {
	Package    string
	MinVersion string // empty means unpinned
}

// String renders the requirement in pip format.
func (r Requirement) String() string {
	if r.MinVersion == "" {
		return r.Package
	}
	return r.Package + ">=" + r.MinVersion
}

// BaseRequirements are present in every generated agent regardless of the
// selected tools.
var BaseRequirements = []Requirement{
	{Package: "smolagents", MinVersion: "1.2.2"},
	{Package: "huggingface-hub", MinVersion: "0.19.0"},
}

// GradioClient is the single source for the gradio-client minimum;
// Tool.from_space wrappers talk to their Space through it.
var GradioClient = Requirement{Package: "gradio-client", MinVersion: "1.3.0"}

// entry maps capability keywords to the libraries that serve them.
type entry struct {
	keywords     []string
	requirements []Requirement
}

// table is the static library catalog. Keywords are matched
// case-insensitively as substrings of the capability text.
var table = []entry{
	{
		keywords:     []string{"http", "fetch", "request", "api", "download"},
		requirements: []Requirement{{Package: "requests", MinVersion: "2.31.0"}},
	},
	{
		keywords:     []string{"scrape", "scraping", "html", "web page", "crawl"},
		requirements: []Requirement{{Package: "beautifulsoup4", MinVersion: "4.12.0"}, {Package: "requests", MinVersion: "2.31.0"}},
	},
	{
		keywords:     []string{"search", "duckduckgo"},
		requirements: []Requirement{{Package: "duckduckgo-search", MinVersion: "4.0.0"}},
	},
	{
		keywords:     []string{"image", "picture", "diffusion", "photo"},
		requirements: []Requirement{{Package: "pillow", MinVersion: "10.0.0"}},
	},
	{
		keywords:     []string{"gradio", "space", "spaces"},
		requirements: []Requirement{GradioClient},
	},
	{
		keywords:     []string{"dataframe", "csv", "excel", "tabular", "data analysis"},
		requirements: []Requirement{{Package: "pandas", MinVersion: "2.0.0"}},
	},
	{
		keywords:     []string{"numeric", "matrix", "array", "math"},
		requirements: []Requirement{{Package: "numpy", MinVersion: "1.24.0"}},
	},
	{
		keywords:     []string{"plot", "chart", "graph", "visualiz"},
		requirements: []Requirement{{Package: "matplotlib", MinVersion: "3.7.0"}},
	},
	{
		keywords:     []string{"nlp", "text classification", "sentiment", "translation", "summariz", "transformer"},
		requirements: []Requirement{{Package: "transformers", MinVersion: "4.35.0"}, {Package: "torch", MinVersion: "2.0.0"}},
	},
	{
		keywords:     []string{"machine learning", "sklearn", "regression", "clustering"},
		requirements: []Requirement{{Package: "scikit-learn", MinVersion: "1.3.0"}},
	},
	{
		keywords:     []string{"audio", "speech", "voice", "transcri"},
		requirements: []Requirement{{Package: "librosa", MinVersion: "0.10.0"}},
	},
	{
		keywords:     []string{"pdf", "document"},
		requirements: []Requirement{{Package: "pypdf", MinVersion: "3.17.0"}},
	},
	{
		keywords:     []string{"yaml"},
		requirements: []Requirement{{Package: "pyyaml", MinVersion: "6.0"}},
	},
	{
		keywords:     []string{"browser", "automation", "selenium"},
		requirements: []Requirement{{Package: "selenium", MinVersion: "4.15.0"}},
	},
	{
		keywords:     []string{"format", "lint"},
		requirements: []Requirement{{Package: "black", MinVersion: "23.0.0"}},
	},
}
