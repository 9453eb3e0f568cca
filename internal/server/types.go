package server

// restJoke is the REST view of a joke. The remote wire field "joke" is
// presented as "text" on this surface.
type restJoke struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

type jokeResponse struct {
	Success bool     `json:"success"`
	Joke    restJoke `json:"joke"`
}

type jokesResponse struct {
	Success bool       `json:"success"`
	Count   int        `json:"count"`
	Jokes   []restJoke `json:"jokes"`
}

type category struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}
