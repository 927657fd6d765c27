package models

type Place struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

type City struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Places      []Place `json:"places"`
}
