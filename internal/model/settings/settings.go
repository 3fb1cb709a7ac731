package settings

// Settings is the process-wide UI preference singleton. It never interacts
// with transcripts or personas.
type Settings struct {
	Theme string `json:"theme"`
}

// Default returns the settings used before the user saves any.
func Default() Settings {
	return Settings{Theme: "dark"}
}
