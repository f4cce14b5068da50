package teacher

// Teacher is pre-seeded reference data; there is no HTTP registration path.
// New teachers are added with the admin CLI.
type Teacher struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
