package omdb

// Response indicator values
const (
	responseTrue  = "True"
	responseFalse = "False"
)

// SearchResponse represents the body of an OMDb title search (s=...)
type SearchResponse struct {
	Response     string       `json:"Response"`
	Search       []SearchItem `json:"Search,omitempty"`
	TotalResults string       `json:"totalResults,omitempty"`
	Error        string       `json:"Error,omitempty"`
}

// SearchItem represents one entry of the Search array
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}
