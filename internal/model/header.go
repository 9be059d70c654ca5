package model

// PageHeader is the title block shown on top of every view.
type PageHeader struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// HomeSection is one navigation entry on the home view.
type HomeSection struct {
	PageHeader
	Path string `json:"path"`
}
